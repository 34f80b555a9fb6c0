package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"github.com/NadeeshaMedagama/modgoviya/cart/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/cart/pkg/response"
	catalogResponse "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/response"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/notify"
)

// fakeCartClient keeps an in-memory cart and can be told to fail the next
// call, standing in for the remote side of the store.
type fakeCartClient struct {
	mu       sync.Mutex
	cart     response.Cart
	products map[uuid.UUID]catalogResponse.Product
	failWith error
	calls    []string
}

func newFakeCartClient(products ...catalogResponse.Product) *fakeCartClient {
	byID := map[uuid.UUID]catalogResponse.Product{}
	for _, product := range products {
		byID[product.ID] = product
	}
	return &fakeCartClient{
		cart:     response.Cart{ID: uuid.New(), UserID: uuid.New()},
		products: byID,
	}
}

func (f *fakeCartClient) snapshot() response.Cart {
	cart := f.cart
	cart.CartItems = make([]response.CartItem, len(f.cart.CartItems))
	copy(cart.CartItems, f.cart.CartItems)
	return cart
}

func (f *fakeCartClient) takeFailure() error {
	err := f.failWith
	f.failWith = nil
	return err
}

func (f *fakeCartClient) FetchCart(c context.Context) (response.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "FetchCart")
	if err := f.takeFailure(); err != nil {
		return response.Cart{}, err
	}
	return f.snapshot(), nil
}

func (f *fakeCartClient) AddItem(
	c context.Context,
	param request.AddCartItem,
) (response.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "AddItem")
	if err := f.takeFailure(); err != nil {
		return response.Cart{}, err
	}
	product, ok := f.products[param.ProductID]
	if !ok {
		return response.Cart{}, inErrors.ErrProductNotFound
	}
	for i, item := range f.cart.CartItems {
		if item.Product.ID == param.ProductID {
			f.cart.CartItems[i].Quantity += param.Quantity
			return f.snapshot(), nil
		}
	}
	f.cart.CartItems = append(f.cart.CartItems, response.CartItem{
		ID:       uuid.New(),
		CartID:   f.cart.ID,
		Product:  product,
		Quantity: param.Quantity,
	})
	return f.snapshot(), nil
}

func (f *fakeCartClient) UpdateItemQuantity(
	c context.Context,
	itemID uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "UpdateItemQuantity")
	if err := f.takeFailure(); err != nil {
		return response.Cart{}, err
	}
	for i, item := range f.cart.CartItems {
		if item.ID == itemID {
			f.cart.CartItems[i].Quantity = quantity
			return f.snapshot(), nil
		}
	}
	return response.Cart{}, inErrors.ErrCartItemGone
}

func (f *fakeCartClient) RemoveItem(
	c context.Context,
	itemID uuid.UUID,
) (response.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "RemoveItem")
	if err := f.takeFailure(); err != nil {
		return response.Cart{}, err
	}
	for i, item := range f.cart.CartItems {
		if item.ID == itemID {
			f.cart.CartItems = append(f.cart.CartItems[:i], f.cart.CartItems[i+1:]...)
			return f.snapshot(), nil
		}
	}
	return response.Cart{}, inErrors.ErrCartItemGone
}

func (f *fakeCartClient) ClearCart(c context.Context) (response.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "ClearCart")
	if err := f.takeFailure(); err != nil {
		return response.Cart{}, err
	}
	f.cart.CartItems = nil
	return f.snapshot(), nil
}

// blockingCartClient parks FetchCart until release is closed, exposing the
// in-flight window.
type blockingCartClient struct {
	*fakeCartClient
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCartClient) FetchCart(c context.Context) (response.Cart, error) {
	close(b.entered)
	<-b.release
	return b.fakeCartClient.FetchCart(c)
}

// capturingNotifier records the toasts the store emits.
type capturingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *capturingNotifier) Success(c context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *capturingNotifier) Error(c context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func newProduct(title string, price string) catalogResponse.Product {
	return catalogResponse.Product{
		ID:    uuid.New(),
		Title: title,
		Price: decimal.RequireFromString(price),
	}
}

func TestStoreAddItemUpdatesSnapshotAndSubtotal(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	mango := newProduct("TJC Mango 1kg", "780.50")
	client := newFakeCartClient(rice, mango)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c := context.Background()
	assert.NoError(t, store.Fetch(c))
	assert.True(t, store.Snapshot().IsEmpty())
	assert.EqualValues(t, 1, store.Version())

	before := store.Subtotal()
	assert.NoError(t, store.AddItem(c, rice.ID, 2))
	after := store.Subtotal()

	assert.EqualValues(t, 2, store.ItemCount())
	assert.True(
		t,
		after.Sub(before).Equal(rice.Price.Mul(decimal.NewFromInt(2))),
		"subtotal should grow by price times quantity, grew by %s", after.Sub(before),
	)
	assert.EqualValues(t, 2, store.Version())
	assert.NoError(t, store.Err())
}

func TestStoreAddItemDefaultsQuantityToOne(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	assert.NoError(t, store.AddItem(context.Background(), rice.ID, 0))
	assert.EqualValues(t, 1, store.ItemCount())
}

func TestStoreAddItemMergesSameProductLine(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c := context.Background()
	assert.NoError(t, store.AddItem(c, rice.ID, 1))
	assert.NoError(t, store.AddItem(c, rice.ID, 2))

	cart := store.Snapshot()
	assert.Len(t, cart.CartItems, 1)
	assert.EqualValues(t, 3, cart.CartItems[0].Quantity)
}

func TestStoreUpdateQuantityMovesSubtotalByDelta(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c := context.Background()
	assert.NoError(t, store.AddItem(c, rice.ID, 2))
	itemID := store.Snapshot().CartItems[0].ID
	before := store.Subtotal()

	assert.NoError(t, store.UpdateItemQuantity(c, itemID, 5))

	delta := store.Subtotal().Sub(before)
	expected := rice.Price.Mul(decimal.NewFromInt(3))
	assert.True(
		t,
		delta.Equal(expected),
		"quantity 2 to 5 should move the subtotal by 3x price, moved by %s", delta,
	)
}

func TestStoreRemoveLastItemLeavesEmptyCart(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c := context.Background()
	assert.NoError(t, store.AddItem(c, rice.ID, 1))
	itemID := store.Snapshot().CartItems[0].ID

	assert.NoError(t, store.RemoveItem(c, itemID))
	assert.True(t, store.Snapshot().IsEmpty())
	assert.True(t, store.Subtotal().IsZero())
	assert.EqualValues(t, 0, store.ItemCount())
}

func TestStoreLoadingFlagTracksInFlightOperation(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := &blockingCartClient{
		fakeCartClient: newFakeCartClient(rice),
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	assert.False(t, store.Loading())

	done := make(chan error, 1)
	go func() { done <- store.Fetch(context.Background()) }()

	<-client.entered
	assert.True(t, store.Loading(), "loading while the fetch is in flight")

	close(client.release)
	assert.NoError(t, <-done)
	assert.False(t, store.Loading())
}

func TestStoreLoadingFlagClearsAfterFailure(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	client.mu.Lock()
	client.failWith = inErrors.ErrCartItemGone
	client.mu.Unlock()

	assert.Error(t, store.Fetch(context.Background()))
	assert.False(t, store.Loading())
}

func TestStoreFailedOperationKeepsStaleSnapshot(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c := context.Background()
	assert.NoError(t, store.AddItem(c, rice.ID, 2))
	version := store.Version()

	client.mu.Lock()
	client.failWith = inErrors.ErrCartItemGone
	client.mu.Unlock()

	err := store.UpdateItemQuantity(c, store.Snapshot().CartItems[0].ID, 5)
	assert.ErrorIs(t, err, inErrors.ErrCartItemGone)
	assert.ErrorIs(t, store.Err(), inErrors.ErrCartItemGone)

	assert.EqualValues(t, version, store.Version())
	assert.EqualValues(t, 2, store.ItemCount(), "stale snapshot should survive the failure")

	assert.NoError(t, store.Fetch(c))
	assert.NoError(t, store.Err(), "a later success should reset the error state")
}

func TestStoreSerializesConcurrentMutations(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	mango := newProduct("TJC Mango 1kg", "780.50")
	client := newFakeCartClient(rice, mango)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c := context.Background()
	group, groupCtx := errgroup.WithContext(c)
	group.Go(func() error { return store.AddItem(groupCtx, rice.ID, 1) })
	group.Go(func() error { return store.AddItem(groupCtx, mango.ID, 1) })
	assert.NoError(t, group.Wait())

	cart := store.Snapshot()
	assert.Len(t, cart.CartItems, 2, "both racing adds should be applied, in submission order")
	assert.EqualValues(t, 2, store.ItemCount())
	assert.EqualValues(t, 2, store.Version())
}

func TestStoreAddItemNotifies(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	notifier := &capturingNotifier{}
	store := NewStore(client, notifier)
	defer store.Close()

	c := context.Background()
	assert.NoError(t, store.AddItem(c, rice.ID, 1))
	assert.Equal(t, []string{"product added to cart"}, notifier.successes)
	assert.Empty(t, notifier.failures)

	assert.Error(t, store.AddItem(c, uuid.New(), 1))
	assert.Len(t, notifier.failures, 1)
}

func TestStoreClosedStoreRejectsOperations(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	store.Close()

	err := store.AddItem(context.Background(), rice.ID, 1)
	assert.ErrorIs(t, err, inErrors.ErrStoreClosed)
}

func TestStoreCancelledContextAbortsSubmission(t *testing.T) {
	rice := newProduct("Red Rice 5kg", "1250.00")
	client := newFakeCartClient(rice)
	store := NewStore(client, notify.LogNotifier{})
	defer store.Close()

	c, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.AddItem(c, rice.ID, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
