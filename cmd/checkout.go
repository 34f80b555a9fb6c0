package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	cartService "github.com/NadeeshaMedagama/modgoviya/cart/service"
	cartStore "github.com/NadeeshaMedagama/modgoviya/cart/store"
	checkoutService "github.com/NadeeshaMedagama/modgoviya/checkout/service"
	checkoutRequest "github.com/NadeeshaMedagama/modgoviya/checkout/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/config"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/notify"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
	userRequest "github.com/NadeeshaMedagama/modgoviya/user/pkg/request"
)

type checkoutParam struct {
	Email          string
	Password       string
	FullName       string
	Phone          string
	Address        string
	City           string
	PostalCode     string
	Country        string
	CardNumber     string
	ExpiryDate     string
	Cvv            string
	CardholderName string
}

func runCheckoutFlow(c context.Context, param checkoutParam) {
	c, span := otel.Tracer.Start(c, "runCheckoutFlow")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppCheckoutFlow).
		Str(log.KeyTag, "main runCheckoutFlow").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, common.AppCheckoutFlow)
	logger.Info().Msg("initialized config")

	session, client := initSession(cfg)
	c = logger.WithContext(c)

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

	logger = logger.With().Str(log.KeyProcess, "fetch cart").Logger()
	logger.Info().Msg("fetching cart")
	store := cartStore.NewStore(cartService.NewCartService(client), notify.LogNotifier{})
	defer store.Close()
	if err := store.Fetch(c); err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msgf("fetched cart with %d items, subtotal Rs.%s", store.ItemCount(), store.Subtotal())

	logger = logger.With().Str(log.KeyProcess, "checkout").Logger()
	processingDelay := time.Duration(cfg.Checkout.ProcessingDelayMs) * time.Millisecond
	wizard, err := checkoutService.NewWizard(store, processingDelay)
	if err != nil {
		err = fmt.Errorf("failed starting checkout with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	logger.Info().Str(log.KeyCheckoutStep, wizard.Step().String()).Msg("submitting shipping info")
	fieldErrors, err := wizard.SubmitShipping(c, checkoutRequest.ShippingInfo{
		FullName:   param.FullName,
		Email:      param.Email,
		Phone:      param.Phone,
		Address:    param.Address,
		City:       param.City,
		PostalCode: param.PostalCode,
		Country:    param.Country,
	})
	if err != nil {
		err = fmt.Errorf("failed submitting shipping info with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if len(fieldErrors) > 0 {
		for field, message := range fieldErrors {
			logger.Warn().Msgf("shipping field %s: %s", field, message)
		}
		return
	}
	logger.Info().Msg("submitted shipping info")

	logger.Info().Str(log.KeyCheckoutStep, wizard.Step().String()).Msg("submitting payment info")
	fieldErrors, err = wizard.SubmitPayment(c, checkoutRequest.PaymentInfo{
		CardNumber:     param.CardNumber,
		ExpiryDate:     param.ExpiryDate,
		Cvv:            param.Cvv,
		CardholderName: param.CardholderName,
	})
	if err != nil {
		err = fmt.Errorf("failed submitting payment info with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if len(fieldErrors) > 0 {
		for field, message := range fieldErrors {
			logger.Warn().Msgf("payment field %s: %s", field, message)
		}
		return
	}

	order, err := wizard.Order()
	if err != nil {
		err = fmt.Errorf("failed reading order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().
		Str(log.KeyOrderID, order.OrderID).
		Str(log.KeyCheckoutStep, wizard.Step().String()).
		Msgf("order %s placed for Rs.%s", order.OrderID, order.Total)
}
