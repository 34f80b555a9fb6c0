package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/NadeeshaMedagama/modgoviya/cart/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/cart/pkg/response"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/notify"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

// CartClient is the remote side of the store, one call per /cart endpoint.
type CartClient interface {
	FetchCart(c context.Context) (response.Cart, error)
	AddItem(c context.Context, param request.AddCartItem) (response.Cart, error)
	UpdateItemQuantity(c context.Context, itemID uuid.UUID, quantity int32) (response.Cart, error)
	RemoveItem(c context.Context, itemID uuid.UUID) (response.Cart, error)
	ClearCart(c context.Context) (response.Cart, error)
}

type operation struct {
	name  string
	apply func(c context.Context) (response.Cart, error)
	done  chan error
	ctx   context.Context
}

// Store is the single authoritative in-memory mirror of one shopper's
// server-side cart. Every operation is queued onto one worker goroutine, so
// concurrent mutations from different parts of the UI are applied in
// submission order instead of racing; whichever snapshot the server returned
// for the last applied operation is the visible state. Each applied snapshot
// bumps a monotonic version.
type Store struct {
	client   CartClient
	notifier notify.Notifier

	ops       chan operation
	closeOnce sync.Once
	closed    chan struct{}
	finished  chan struct{}

	mu      sync.RWMutex
	cart    response.Cart
	version uint64
	loading bool
	lastErr error
}

func NewStore(client CartClient, notifier notify.Notifier) *Store {
	s := &Store{
		client:   client,
		notifier: notifier,
		ops:      make(chan operation),
		closed:   make(chan struct{}),
		finished: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Store) run() {
	defer close(s.finished)
	for {
		select {
		case <-s.closed:
			return
		case op := <-s.ops:
			op.done <- s.applyOne(op)
		}
	}
}

func (s *Store) applyOne(op operation) error {
	c, span := otel.Tracer.Start(op.ctx, fmt.Sprintf("CartStore %s", op.name))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, fmt.Sprintf("CartStore %s", op.name)).
		Logger()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	c = logger.WithContext(c)
	cart, err := op.apply(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.cart = cart
	s.version++
	s.lastErr = nil
	version := s.version
	s.mu.Unlock()
	logger.Info().
		Uint64(log.KeyCartVersion, version).
		Msgf("applied cart snapshot with %d items", len(cart.CartItems))
	return nil
}

// submit hands the operation to the worker and waits for it. When the
// caller's context is cancelled after the handoff the call returns the
// context error but the worker still applies the operation, so a cancelled
// mutation may land and bump the version anyway; the next Snapshot shows the
// truth either way.
func (s *Store) submit(c context.Context, op operation) error {
	op.ctx = c
	op.done = make(chan error, 1)
	select {
	case <-s.closed:
		return inErrors.ErrStoreClosed
	case <-c.Done():
		return c.Err()
	case s.ops <- op:
	}
	select {
	case <-c.Done():
		return c.Err()
	case err := <-op.done:
		return err
	}
}

// Fetch replaces the snapshot with the server's current cart. On failure the
// previous (possibly stale) snapshot is kept and the error is recoverable via
// Err; no retry is attempted.
func (s *Store) Fetch(c context.Context) error {
	return s.submit(c, operation{
		name:  "Fetch",
		apply: s.client.FetchCart,
	})
}

// AddItem adds quantity units of a product; quantity defaults to 1 when zero.
// Success and failure both surface a user-visible notification.
func (s *Store) AddItem(c context.Context, productID uuid.UUID, quantity int32) error {
	if quantity == 0 {
		quantity = 1
	}
	return s.submit(c, operation{
		name: "AddItem",
		apply: func(c context.Context) (response.Cart, error) {
			cart, err := s.client.AddItem(
				c,
				request.AddCartItem{ProductID: productID, Quantity: quantity},
			)
			if err != nil {
				s.notifier.Error(c, err.Error())
				return response.Cart{}, err
			}
			s.notifier.Success(c, "product added to cart")
			return cart, nil
		},
	})
}

// UpdateItemQuantity forwards the new quantity unchecked; the UI layer guards
// quantity >= 1 before calling.
func (s *Store) UpdateItemQuantity(c context.Context, itemID uuid.UUID, quantity int32) error {
	return s.submit(c, operation{
		name: "UpdateItemQuantity",
		apply: func(c context.Context) (response.Cart, error) {
			return s.client.UpdateItemQuantity(c, itemID, quantity)
		},
	})
}

func (s *Store) RemoveItem(c context.Context, itemID uuid.UUID) error {
	return s.submit(c, operation{
		name: "RemoveItem",
		apply: func(c context.Context) (response.Cart, error) {
			return s.client.RemoveItem(c, itemID)
		},
	})
}

// Clear empties the cart after order completion or logout.
func (s *Store) Clear(c context.Context) error {
	return s.submit(c, operation{
		name:  "Clear",
		apply: s.client.ClearCart,
	})
}

// Snapshot returns a copy of the current cart; callers may not mutate lines
// through it.
func (s *Store) Snapshot() response.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart := s.cart
	cart.CartItems = make([]response.CartItem, len(s.cart.CartItems))
	copy(cart.CartItems, s.cart.CartItems)
	return cart
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Subtotal()
}

// ItemCount is the badge number: total units across all lines.
func (s *Store) ItemCount() int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int32
	for _, item := range s.cart.CartItems {
		count += item.Quantity
	}
	return count
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the recoverable error state left by the last failed operation; a
// later successful operation resets it.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
	<-s.finished
}
