package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	cartService "github.com/NadeeshaMedagama/modgoviya/cart/service"
	cartStore "github.com/NadeeshaMedagama/modgoviya/cart/store"
	catalogService "github.com/NadeeshaMedagama/modgoviya/catalog/service"
	catalogRequest "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/internal/api"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/config"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/notify"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
	userService "github.com/NadeeshaMedagama/modgoviya/user/service"
	userRequest "github.com/NadeeshaMedagama/modgoviya/user/pkg/request"
)

type shopParam struct {
	Email        string
	Password     string
	Username     string
	Search       string
	Category     string
	SortBy       string
	AddProductID string
	Quantity     int32
	Register     bool
}

func runShopClient(c context.Context, param shopParam) {
	c, span := otel.Tracer.Start(c, "runShopClient")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppShopClient).
		Str(log.KeyTag, "main runShopClient").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, common.AppShopClient)
	logger.Info().Msg("initialized config")

	session, client := initSession(cfg)
	c = logger.WithContext(c)

	if param.Register {
		logger = logger.With().Str(log.KeyProcess, "register").Logger()
		logger.Info().Str(log.KeyEmail, param.Email).Msg("registering account")
		_, err := session.Register(c, userRequest.Register{
			Username: param.Username,
			Email:    param.Email,
			Password: param.Password,
		})
		if err != nil {
			err = fmt.Errorf("failed registering account with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("registered account")
	}

	logger = logger.With().Str(log.KeyProcess, "login").Logger()
	logger.Info().Str(log.KeyEmail, param.Email).Msg("logging in")
	usr, err := session.Login(c, userRequest.Login{Email: param.Email, Password: param.Password})
	if err != nil {
		err = fmt.Errorf("failed logging in with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Str(log.KeyUserID, usr.ID.String()).Msg("logged in")

	logger = logger.With().Str(log.KeyProcess, "browse catalog").Logger()
	logger.Info().Msg("finding products")
	catalog := catalogService.NewCatalogService(client)
	products, err := catalog.FindProducts(c, catalogRequest.FindProducts{
		Search:   param.Search,
		Category: param.Category,
		SortBy:   param.SortBy,
	})
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	for _, product := range products {
		logger.Info().
			Str(log.KeyProductID, product.ID.String()).
			Msgf("%s (%s) Rs.%s rating=%.1f", product.Title, product.Category, product.Price, product.Rating)
	}
	logger.Info().Msgf("found %d products", len(products))

	logger = logger.With().Str(log.KeyProcess, "fill cart").Logger()
	store := cartStore.NewStore(cartService.NewCartService(client), notify.LogNotifier{})
	defer store.Close()
	if err := store.Fetch(c); err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	if param.AddProductID != "" {
		productID, err := uuid.Parse(param.AddProductID)
		if err != nil {
			err = fmt.Errorf("failed parsing product id with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().
			Str(log.KeyProductID, productID.String()).
			Int32(log.KeyQuantity, param.Quantity).
			Msg("adding product to cart")
		if err := store.AddItem(c, productID, param.Quantity); err != nil {
			err = fmt.Errorf("failed adding product to cart with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("added product to cart")
	}

	cart := store.Snapshot()
	for _, item := range cart.CartItems {
		logger.Info().
			Str(log.KeyCartItemID, item.ID.String()).
			Msgf("%dx %s Rs.%s", item.Quantity, item.Product.Title, item.Product.Price)
	}
	logger.Info().
		Uint64(log.KeyCartVersion, store.Version()).
		Msgf("cart has %d items, subtotal Rs.%s", store.ItemCount(), store.Subtotal())
}

// initSession wires the session and the api client together. The client pulls
// its bearer token from the session it authenticates.
func initSession(cfg *config.Config) (*userService.Session, *api.Client) {
	var session *userService.Session
	client := api.NewClient(
		cfg.Api.BaseUrl,
		time.Duration(cfg.Api.TimeoutSeconds)*time.Second,
		func() string {
			if session == nil {
				return ""
			}
			return session.Token()
		},
	)
	session = userService.NewSession(client)
	return session, client
}
