package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	cartResponse "github.com/NadeeshaMedagama/modgoviya/cart/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/checkout/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/checkout/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/internal/common/validate"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

// Step is the checkout wizard position. Forward progress is strictly gated by
// validation; the only backward transition is Payment to Shipping.
type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// FieldErrors maps a field's json name to the message shown inline next to
// it. An empty set means the step validated.
type FieldErrors map[string]string

// CartStore is the slice of the cart store the wizard needs: the snapshot the
// total is computed from, and the clear issued on completion.
type CartStore interface {
	Snapshot() cartResponse.Cart
	Clear(c context.Context) error
}

// Wizard collects shipping and payment data across the ordered checkout steps
// for a single session. It is driven from one goroutine; the serialized cart
// store behind it handles the remote side.
type Wizard struct {
	cart            CartStore
	validator       *validator.Validate
	processingDelay time.Duration

	step     Step
	shipping request.ShippingInfo
	payment  request.PaymentInfo
	total    decimal.Decimal
	order    response.Order
}

// NewWizard begins checkout, capturing the order total from the cart at this
// moment. Shipping and tax are fixed at zero, so the total is the subtotal.
func NewWizard(cart CartStore, processingDelay time.Duration) (*Wizard, error) {
	snapshot := cart.Snapshot()
	if snapshot.IsEmpty() {
		return nil, inErrors.ErrEmptyCart
	}
	return &Wizard{
		cart:            cart,
		validator:       validate.New(),
		processingDelay: processingDelay,
		step:            StepShipping,
		total:           snapshot.Subtotal(),
	}, nil
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Total() decimal.Decimal {
	return w.total
}

func (w *Wizard) Shipping() request.ShippingInfo {
	return w.shipping
}

func (w *Wizard) Payment() request.PaymentInfo {
	return w.payment
}

// Order returns the confirmation once the wizard reached StepConfirmation.
func (w *Wizard) Order() (response.Order, error) {
	if w.step != StepConfirmation {
		return response.Order{}, inErrors.ErrWrongStep
	}
	return w.order, nil
}

// SubmitShipping validates step one and advances to the payment step. Field
// errors keep the wizard on the shipping step.
func (w *Wizard) SubmitShipping(
	c context.Context,
	info request.ShippingInfo,
) (FieldErrors, error) {
	c, span := otel.Tracer.Start(c, "CheckoutWizard SubmitShipping")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutWizard SubmitShipping").
		Str(log.KeyCheckoutStep, w.step.String()).
		Logger()

	if w.step != StepShipping {
		otel.RecordError(inErrors.ErrWrongStep, span)
		logger.Error().Err(inErrors.ErrWrongStep).Msg(inErrors.ErrWrongStep.Error())
		return nil, inErrors.ErrWrongStep
	}

	logger.Info().Msg("validating shipping info")
	if fieldErrors := w.check(c, info); len(fieldErrors) > 0 {
		logger.Info().
			Int("fieldErrors", len(fieldErrors)).
			Msg("shipping info invalid, staying on shipping step")
		return fieldErrors, nil
	}
	logger.Info().Msg("validated shipping info")

	w.shipping = info
	w.step = StepPayment
	logger.Info().Str(log.KeyCheckoutStep, w.step.String()).Msg("advanced to payment step")
	return nil, nil
}

// Back returns from the payment step to the shipping step. It is always
// permitted and loses no data.
func (w *Wizard) Back(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutWizard Back").
		Str(log.KeyCheckoutStep, w.step.String()).
		Logger()

	if w.step != StepPayment {
		logger.Error().Err(inErrors.ErrWrongStep).Msg(inErrors.ErrWrongStep.Error())
		return inErrors.ErrWrongStep
	}
	w.step = StepShipping
	logger.Info().Str(log.KeyCheckoutStep, w.step.String()).Msg("returned to shipping step")
	return nil
}

// SubmitPayment validates step two, simulates payment processing, generates
// the display order identifier, clears the cart and advances to confirmation.
// Nothing is committed when validation fails.
func (w *Wizard) SubmitPayment(
	c context.Context,
	info request.PaymentInfo,
) (FieldErrors, error) {
	c, span := otel.Tracer.Start(c, "CheckoutWizard SubmitPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutWizard SubmitPayment").
		Str(log.KeyCheckoutStep, w.step.String()).
		Object("payment", info).
		Logger()

	if w.step != StepPayment {
		otel.RecordError(inErrors.ErrWrongStep, span)
		logger.Error().Err(inErrors.ErrWrongStep).Msg(inErrors.ErrWrongStep.Error())
		return nil, inErrors.ErrWrongStep
	}

	logger.Info().Msg("validating payment info")
	if fieldErrors := w.check(c, info); len(fieldErrors) > 0 {
		logger.Info().
			Int("fieldErrors", len(fieldErrors)).
			Msg("payment info invalid, staying on payment step")
		return fieldErrors, nil
	}
	w.payment = info
	logger.Info().Msg("validated payment info")

	logger = logger.With().Str(log.KeyProcess, "processing payment").Logger()
	logger.Info().Msg("processing payment")
	select {
	case <-c.Done():
		otel.RecordError(c.Err(), span)
		logger.Error().Err(c.Err()).Msg(c.Err().Error())
		return nil, c.Err()
	case <-time.After(w.processingDelay):
	}
	logger.Info().Msg("processed payment")

	placedAt := time.Now()
	w.order = response.Order{
		OrderID:  fmt.Sprintf("MG%d", placedAt.UnixMilli()),
		Total:    w.total,
		PlacedAt: placedAt,
	}

	logger = logger.With().
		Str(log.KeyProcess, "clearing cart").
		Str(log.KeyOrderID, w.order.OrderID).
		Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	if err := w.cart.Clear(c); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("cleared cart")

	w.step = StepConfirmation
	logger.Info().Str(log.KeyCheckoutStep, w.step.String()).Msg("advanced to confirmation step")
	return nil, nil
}

func (w *Wizard) check(c context.Context, s interface{}) FieldErrors {
	err := w.validator.StructCtx(c, s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}
	fieldErrors := FieldErrors{}
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		if _, taken := fieldErrors[field]; taken {
			continue
		}
		fieldErrors[field] = messageFor(field, fieldError.Tag())
	}
	return fieldErrors
}

func messageFor(field string, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "emailshape":
		return "enter a valid email address"
	case "cardnumber":
		return "card number must be 16 digits"
	case "cvv":
		return "cvv must be 3 digits"
	}
	return fmt.Sprintf("%s is invalid", field)
}
