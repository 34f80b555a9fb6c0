package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/cart/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/cart/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/internal/api"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

// CartService talks to the remote /cart endpoints on behalf of the signed-in
// shopper. Each mutation returns the server's post-mutation snapshot.
type CartService struct {
	client *api.Client
}

func NewCartService(client *api.Client) CartService {
	return CartService{client: client}
}

type cartData struct {
	Cart response.Cart `json:"cart"`
}

func (svc CartService) FetchCart(c context.Context) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FetchCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FetchCart").
		Str(log.KeyProcess, "fetching cart").
		Logger()

	logger.Info().Msg("fetching cart")
	data := cartData{}
	c = logger.WithContext(c)
	if err := svc.client.Get(c, "/cart", &data); err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("fetched cart with %d items", len(data.Cart.CartItems))
	return data.Cart, nil
}

func (svc CartService) AddItem(
	c context.Context,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyProductID, param.ProductID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msgf("adding productId=%s to cart", param.ProductID.String())
	data := cartData{}
	c = logger.WithContext(c)
	if err := svc.client.Post(c, "/cart", param, &data); err != nil {
		err = fmt.Errorf(
			"failed adding productId=%s to cart with error=%w",
			param.ProductID.String(),
			err,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("added productId=%s to cart", param.ProductID.String())
	return data.Cart, nil
}

// UpdateItemQuantity sends the new quantity as-is. The caller guards
// quantity >= 1; the storefront never lets a line reach zero, it removes it.
func (svc CartService) UpdateItemQuantity(
	c context.Context,
	itemID uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItemQuantity").
		Str(log.KeyCartItemID, itemID.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
	logger.Info().Msgf("updating cartItemId=%s to quantity=%d", itemID.String(), quantity)
	data := cartData{}
	c = logger.WithContext(c)
	param := request.UpdateCartItem{Quantity: quantity}
	if err := svc.client.Put(c, "/cart/"+itemID.String(), param, &data); err != nil {
		err = fmt.Errorf("failed updating cartItemId=%s with error=%w", itemID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("updated cartItemId=%s", itemID.String())
	return data.Cart, nil
}

func (svc CartService) RemoveItem(
	c context.Context,
	itemID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyCartItemID, itemID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msgf("removing cartItemId=%s", itemID.String())
	data := cartData{}
	c = logger.WithContext(c)
	if err := svc.client.Delete(c, "/cart/"+itemID.String(), &data); err != nil {
		err = fmt.Errorf("failed removing cartItemId=%s with error=%w", itemID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("removed cartItemId=%s", itemID.String())
	return data.Cart, nil
}

// ClearCart empties the server-side cart after order completion or logout.
func (svc CartService) ClearCart(c context.Context) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	data := cartData{}
	c = logger.WithContext(c)
	if err := svc.client.Delete(c, "/cart", &data); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("cleared cart")
	return data.Cart, nil
}
