package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
)

func Start() {
	logger := log.InitLogger("/var/log/modgoviya.log").
		With().
		Str(log.KeyAppName, common.AppName).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "modgoviya"}

	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Run the in-memory marketplace api",
		Run: func(cmd *cobra.Command, args []string) {
			runApiService(cmd.Context())
		},
	}

	shopParam := shopParam{}
	shopCmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and fill a cart",
		Run: func(cmd *cobra.Command, args []string) {
			runShopClient(cmd.Context(), shopParam)
		},
	}
	shopCmd.Flags().StringVar(&shopParam.Email, "email", "", "account email")
	shopCmd.Flags().StringVar(&shopParam.Password, "password", "", "account password")
	shopCmd.Flags().StringVar(&shopParam.Username, "username", "", "username when registering")
	shopCmd.Flags().BoolVar(&shopParam.Register, "register", false, "register the account first")
	shopCmd.Flags().StringVar(&shopParam.Search, "search", "", "search term")
	shopCmd.Flags().StringVar(&shopParam.Category, "category", "", "category filter")
	shopCmd.Flags().StringVar(&shopParam.SortBy, "sort", "", "sort order: latest, price_asc, price_desc, rating")
	shopCmd.Flags().StringVar(&shopParam.AddProductID, "add", "", "product id to add to the cart")
	shopCmd.Flags().Int32Var(&shopParam.Quantity, "quantity", 1, "quantity for the added product")

	checkoutParam := checkoutParam{}
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Walk the cart through the checkout steps",
		Run: func(cmd *cobra.Command, args []string) {
			runCheckoutFlow(cmd.Context(), checkoutParam)
		},
	}
	checkoutCmd.Flags().StringVar(&checkoutParam.Email, "email", "", "account email")
	checkoutCmd.Flags().StringVar(&checkoutParam.Password, "password", "", "account password")
	checkoutCmd.Flags().StringVar(&checkoutParam.FullName, "full-name", "", "shipping full name")
	checkoutCmd.Flags().StringVar(&checkoutParam.Phone, "phone", "", "shipping phone")
	checkoutCmd.Flags().StringVar(&checkoutParam.Address, "address", "", "shipping address")
	checkoutCmd.Flags().StringVar(&checkoutParam.City, "city", "", "shipping city")
	checkoutCmd.Flags().StringVar(&checkoutParam.PostalCode, "postal-code", "", "shipping postal code")
	checkoutCmd.Flags().StringVar(&checkoutParam.Country, "country", "Sri Lanka", "shipping country")
	checkoutCmd.Flags().StringVar(&checkoutParam.CardNumber, "card-number", "", "payment card number")
	checkoutCmd.Flags().StringVar(&checkoutParam.ExpiryDate, "expiry-date", "", "payment card expiry")
	checkoutCmd.Flags().StringVar(&checkoutParam.Cvv, "cvv", "", "payment card cvv")
	checkoutCmd.Flags().StringVar(&checkoutParam.CardholderName, "cardholder-name", "", "payment cardholder name")

	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the scripted support assistant",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runChat(cmd.Context(), args)
		},
	}

	rootCmd.AddCommand(apiCmd, shopCmd, checkoutCmd, chatCmd)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
