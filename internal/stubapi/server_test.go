package stubapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	cartService "github.com/NadeeshaMedagama/modgoviya/cart/service"
	cartStore "github.com/NadeeshaMedagama/modgoviya/cart/store"
	catalogService "github.com/NadeeshaMedagama/modgoviya/catalog/service"
	catalogRequest "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/request"
	cropService "github.com/NadeeshaMedagama/modgoviya/crops/service"
	cropRequest "github.com/NadeeshaMedagama/modgoviya/crops/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/internal/api"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/notify"
	userService "github.com/NadeeshaMedagama/modgoviya/user/service"
	userRequest "github.com/NadeeshaMedagama/modgoviya/user/pkg/request"
)

const testSecretKey = "test-secret-key"

func newTestStack(t *testing.T) (*httptest.Server, *userService.Session, *api.Client) {
	t.Helper()
	server := httptest.NewServer(NewServer(testSecretKey).Router())
	t.Cleanup(server.Close)

	var session *userService.Session
	client := api.NewClient(
		server.URL+common.ApiBasePath,
		5*time.Second,
		func() string {
			if session == nil {
				return ""
			}
			return session.Token()
		},
	)
	session = userService.NewSession(client)
	return server, session, client
}

func register(t *testing.T, session *userService.Session, email string) {
	t.Helper()
	_, err := session.Register(context.Background(), userRequest.Register{
		Username: "nimal",
		Email:    email,
		Password: "password123",
	})
	assert.NoError(t, err)
}

func login(t *testing.T, session *userService.Session, email string) {
	t.Helper()
	_, err := session.Login(context.Background(), userRequest.Login{
		Email:    email,
		Password: "password123",
	})
	assert.NoError(t, err)
}

func TestRegisterLoginLogout(t *testing.T) {
	_, session, _ := newTestStack(t)
	c := context.Background()

	user, err := session.Register(c, userRequest.Register{
		Username: "nimal",
		Email:    "Nimal@Example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "nimal@example.com", user.Email, "emails are stored lowercased")
	assert.False(t, session.LoggedIn(), "registering does not sign the shopper in")

	_, err = session.Login(c, userRequest.Login{
		Email:    "nimal@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.True(t, session.LoggedIn())
	assert.NotEmpty(t, session.Token())

	session.Logout(c)
	assert.False(t, session.LoggedIn())
	assert.Empty(t, session.Token())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, session, _ := newTestStack(t)
	c := context.Background()
	register(t, session, "nimal@example.com")

	_, err := session.Login(c, userRequest.Login{
		Email:    "nimal@example.com",
		Password: "wrong-password",
	})

	apiErr := &api.Error{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.False(t, session.LoggedIn())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, session, _ := newTestStack(t)
	register(t, session, "nimal@example.com")

	_, err := session.Register(context.Background(), userRequest.Register{
		Username: "other",
		Email:    "nimal@example.com",
		Password: "password456",
	})

	apiErr := &api.Error{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestOAuthSignInCreatesAccountOnFirstUse(t *testing.T) {
	_, session, _ := newTestStack(t)
	c := context.Background()

	user, err := session.LoginWithProvider(c, userRequest.OAuthExchange{
		Provider:    "google",
		AccessToken: "provider-access-token",
		Email:       "kamala@gmail.com",
		Username:    "kamala",
	})

	assert.NoError(t, err)
	assert.Equal(t, "google", user.Provider)
	assert.Equal(t, "kamala@gmail.com", user.Email)
	assert.True(t, session.LoggedIn())

	again, err := session.LoginWithProvider(c, userRequest.OAuthExchange{
		Provider:    "google",
		AccessToken: "another-token",
		Email:       "kamala@gmail.com",
		Username:    "kamala",
	})
	assert.NoError(t, err)
	assert.Equal(t, user.ID, again.ID, "repeat sign-in reuses the account")
}

func TestCatalogBrowsing(t *testing.T) {
	_, _, client := newTestStack(t)
	c := context.Background()
	catalog := catalogService.NewCatalogService(client)

	all, err := catalog.FindProducts(c, catalogRequest.FindProducts{})
	assert.NoError(t, err)
	assert.Len(t, all, 8)

	cheapFirst, err := catalog.FindProducts(c, catalogRequest.FindProducts{SortBy: "price_asc"})
	assert.NoError(t, err)
	for i := 1; i < len(cheapFirst); i++ {
		assert.True(
			t,
			cheapFirst[i-1].Price.LessThanOrEqual(cheapFirst[i].Price),
			"products should be sorted by ascending price",
		)
	}

	grains, err := catalog.FindProducts(c, catalogRequest.FindProducts{Category: "grains"})
	assert.NoError(t, err)
	assert.Len(t, grains, 1)
	assert.Equal(t, "Red Rice 5kg", grains[0].Title)

	rice, err := catalog.FindProducts(c, catalogRequest.FindProducts{Search: "rice"})
	assert.NoError(t, err)
	assert.Len(t, rice, 1)

	found, err := catalog.FindProductById(c, all[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, all[0].ID, found.ID)
}

func TestCartRequiresAuthentication(t *testing.T) {
	_, _, client := newTestStack(t)

	_, err := cartService.NewCartService(client).FetchCart(context.Background())

	apiErr := &api.Error{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestCartLifecycleThroughStore(t *testing.T) {
	_, session, client := newTestStack(t)
	c := context.Background()
	register(t, session, "nimal@example.com")
	login(t, session, "nimal@example.com")

	catalog := catalogService.NewCatalogService(client)
	products, err := catalog.FindProducts(c, catalogRequest.FindProducts{SortBy: "price_asc"})
	assert.NoError(t, err)

	store := cartStore.NewStore(cartService.NewCartService(client), notify.LogNotifier{})
	defer store.Close()

	assert.NoError(t, store.Fetch(c))
	assert.True(t, store.Snapshot().IsEmpty())

	assert.NoError(t, store.AddItem(c, products[0].ID, 2))
	assert.NoError(t, store.AddItem(c, products[1].ID, 1))
	assert.EqualValues(t, 3, store.ItemCount())

	expected := products[0].Price.Mul(decimal.NewFromInt(2)).Add(products[1].Price)
	assert.True(
		t,
		store.Subtotal().Equal(expected),
		"expected subtotal %s got %s", expected, store.Subtotal(),
	)

	cart := store.Snapshot()
	assert.NoError(t, store.UpdateItemQuantity(c, cart.CartItems[0].ID, 5))
	assert.EqualValues(t, 6, store.ItemCount())

	assert.NoError(t, store.RemoveItem(c, cart.CartItems[1].ID))
	assert.Len(t, store.Snapshot().CartItems, 1)

	assert.NoError(t, store.Clear(c))
	assert.True(t, store.Snapshot().IsEmpty())
	assert.True(t, store.Subtotal().IsZero())
}

func TestCartMissingItemLeavesCartUntouched(t *testing.T) {
	_, session, client := newTestStack(t)
	c := context.Background()
	register(t, session, "nimal@example.com")
	login(t, session, "nimal@example.com")

	carts := cartService.NewCartService(client)
	before, err := carts.FetchCart(c)
	assert.NoError(t, err)

	_, err = carts.UpdateItemQuantity(c, uuid.New(), 3)
	apiErr := &api.Error{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, err = carts.RemoveItem(c, uuid.New())
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	after, err := carts.FetchCart(c)
	assert.NoError(t, err)
	assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt), "a 404 must not touch the cart")
}

func TestCropTrackerLifecycle(t *testing.T) {
	_, session, client := newTestStack(t)
	c := context.Background()
	register(t, session, "nimal@example.com")
	login(t, session, "nimal@example.com")

	crops := cropService.NewCropService(client)

	planting := time.Now().AddDate(0, -1, 0)
	created, err := crops.CreateCrop(c, cropRequest.CreateCrop{
		Name:            "Paddy",
		Category:        "grains",
		PlantingDate:    planting,
		ExpectedHarvest: planting.AddDate(0, 4, 0),
		Notes:           "maha season",
	})
	assert.NoError(t, err)
	assert.Equal(t, "planted", created.Status, "status defaults to planted")

	listed, err := crops.FindCrops(c)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)

	updated, err := crops.UpdateCrop(c, created.ID, cropRequest.UpdateCrop{
		Status: "growing",
		Notes:  "transplanted",
	})
	assert.NoError(t, err)
	assert.Equal(t, "growing", updated.Status)

	assert.NoError(t, crops.RemoveCrop(c, created.ID))
	listed, err = crops.FindCrops(c)
	assert.NoError(t, err)
	assert.Empty(t, listed)
}
