package stubapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	cartRequest "github.com/NadeeshaMedagama/modgoviya/cart/pkg/request"
	cartResponse "github.com/NadeeshaMedagama/modgoviya/cart/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

func (s *Server) FetchCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi FetchCart")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi FetchCart").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	s.store.mu.Lock()
	cart := snapshotCart(s.store.cartFor(userID))
	s.store.mu.Unlock()

	logger.Info().Msgf("fetched cart with %d items", len(cart.CartItems))
	writeSuccess(c, w, http.StatusOK, "successfully fetched cart", map[string]interface{}{
		"cart": cart,
	})
}

func (s *Server) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi AddCartItem").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	reqBody := cartRequest.AddCartItem{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}
	logger = logger.With().Str(log.KeyProductID, reqBody.ProductID.String()).Logger()

	s.store.mu.Lock()
	product, found := s.store.productByID(reqBody.ProductID)
	if !found {
		s.store.mu.Unlock()
		logger.Error().
			Err(inErrors.ErrProductNotFound).
			Msg(inErrors.ErrProductNotFound.Error())
		writeFailed(c, w, http.StatusNotFound, inErrors.ErrProductNotFound.Error())
		return
	}

	now := time.Now()
	cart := s.store.cartFor(userID)
	merged := false
	for i := range cart.CartItems {
		if cart.CartItems[i].Product.ID == reqBody.ProductID {
			cart.CartItems[i].Quantity += reqBody.Quantity
			cart.CartItems[i].UpdatedAt = now
			merged = true
			break
		}
	}
	if !merged {
		cart.CartItems = append(cart.CartItems, cartResponse.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			Product:   product,
			Quantity:  reqBody.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	cart.UpdatedAt = now
	snapshot := snapshotCart(cart)
	s.store.mu.Unlock()

	logger.Info().Msgf("added productId=%s to cart", reqBody.ProductID.String())
	writeSuccess(c, w, http.StatusOK, "successfully added cart item", map[string]interface{}{
		"cart": snapshot,
	})
}

func (s *Server) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi UpdateCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi UpdateCartItem").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	cartItemID, err := uuid.Parse(mux.Vars(r)["cartItemId"])
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyCartItemID, cartItemID.String()).Logger()

	reqBody := cartRequest.UpdateCartItem{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}

	s.store.mu.Lock()
	cart := s.store.cartFor(userID)
	updated := false
	now := time.Now()
	for i := range cart.CartItems {
		if cart.CartItems[i].ID == cartItemID {
			cart.CartItems[i].Quantity = reqBody.Quantity
			cart.CartItems[i].UpdatedAt = now
			cart.UpdatedAt = now
			updated = true
			break
		}
	}
	snapshot := snapshotCart(cart)
	s.store.mu.Unlock()

	if !updated {
		logger.Error().Err(inErrors.ErrCartItemGone).Msg(inErrors.ErrCartItemGone.Error())
		writeFailed(c, w, http.StatusNotFound, inErrors.ErrCartItemGone.Error())
		return
	}

	logger.Info().Msgf("updated cartItemId=%s", cartItemID.String())
	writeSuccess(c, w, http.StatusOK, "successfully updated cart item", map[string]interface{}{
		"cart": snapshot,
	})
}

func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi RemoveCartItem").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	cartItemID, err := uuid.Parse(mux.Vars(r)["cartItemId"])
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyCartItemID, cartItemID.String()).Logger()

	s.store.mu.Lock()
	cart := s.store.cartFor(userID)
	removed := false
	for i := range cart.CartItems {
		if cart.CartItems[i].ID == cartItemID {
			cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
			cart.UpdatedAt = time.Now()
			removed = true
			break
		}
	}
	snapshot := snapshotCart(cart)
	s.store.mu.Unlock()

	if !removed {
		logger.Error().Err(inErrors.ErrCartItemGone).Msg(inErrors.ErrCartItemGone.Error())
		writeFailed(c, w, http.StatusNotFound, inErrors.ErrCartItemGone.Error())
		return
	}

	logger.Info().Msgf("removed cartItemId=%s", cartItemID.String())
	writeSuccess(c, w, http.StatusOK, "successfully removed cart item", map[string]interface{}{
		"cart": snapshot,
	})
}

func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi ClearCart").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	s.store.mu.Lock()
	cart := s.store.cartFor(userID)
	cart.CartItems = []cartResponse.CartItem{}
	cart.UpdatedAt = time.Now()
	snapshot := snapshotCart(cart)
	s.store.mu.Unlock()

	logger.Info().Msg("cleared cart")
	writeSuccess(c, w, http.StatusOK, "successfully cleared cart", map[string]interface{}{
		"cart": snapshot,
	})
}
