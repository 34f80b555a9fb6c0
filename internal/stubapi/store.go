package stubapi

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartResponse "github.com/NadeeshaMedagama/modgoviya/cart/pkg/response"
	catalogResponse "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/response"
	cropsResponse "github.com/NadeeshaMedagama/modgoviya/crops/pkg/response"
	userResponse "github.com/NadeeshaMedagama/modgoviya/user/pkg/response"
)

type userRecord struct {
	user         userResponse.User
	passwordHash []byte
}

// memoryStore is the whole backend state: maps behind one mutex. Good enough
// for a development double; the production API owns real persistence.
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]*userRecord
	carts    map[uuid.UUID]*cartResponse.Cart
	crops    map[uuid.UUID][]cropsResponse.Crop
	products []catalogResponse.Product
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[string]*userRecord{},
		carts:    map[uuid.UUID]*cartResponse.Cart{},
		crops:    map[uuid.UUID][]cropsResponse.Crop{},
		products: seedProducts(),
	}
}

func seedProducts() []catalogResponse.Product {
	now := time.Now()
	seed := []struct {
		title    string
		price    string
		category string
		location string
		rating   float64
	}{
		{"Red Rice 5kg", "1250.00", "grains", "Anuradhapura", 4.7},
		{"Tomato Seedlings (tray of 50)", "950.00", "seedlings", "Nuwara Eliya", 4.5},
		{"Organic Compost 25kg", "1800.00", "fertilizer", "Kurunegala", 4.8},
		{"Green Chilli 1kg", "640.00", "vegetables", "Dambulla", 4.2},
		{"Coconut Husk Chips 10kg", "780.00", "planting media", "Kurunegala", 4.4},
		{"King Coconut (bunch of 10)", "1100.00", "fruits", "Gampaha", 4.6},
		{"Knapsack Sprayer 16L", "7450.00", "equipment", "Colombo", 4.3},
		{"Ceylon Cinnamon Quills 500g", "3200.00", "spices", "Galle", 4.9},
	}

	products := make([]catalogResponse.Product, 0, len(seed))
	for _, s := range seed {
		price, _ := decimal.NewFromString(s.price)
		products = append(products, catalogResponse.Product{
			ID:        uuid.New(),
			Title:     s.title,
			Price:     price,
			Image:     "/images/" + strings.ReplaceAll(strings.ToLower(s.title), " ", "-") + ".jpg",
			Location:  s.location,
			Category:  s.category,
			Rating:    s.rating,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return products
}

func (m *memoryStore) productByID(productID uuid.UUID) (catalogResponse.Product, bool) {
	for _, product := range m.products {
		if product.ID == productID {
			return product, true
		}
	}
	return catalogResponse.Product{}, false
}

// cartFor returns the user's cart, creating an empty one on first use.
// Callers hold m.mu.
func (m *memoryStore) cartFor(userID uuid.UUID) *cartResponse.Cart {
	cart, ok := m.carts[userID]
	if !ok {
		now := time.Now()
		cart = &cartResponse.Cart{
			ID:        uuid.New(),
			UserID:    userID,
			CartItems: []cartResponse.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.carts[userID] = cart
	}
	return cart
}

func snapshotCart(cart *cartResponse.Cart) cartResponse.Cart {
	copied := *cart
	copied.CartItems = make([]cartResponse.CartItem, len(cart.CartItems))
	copy(copied.CartItems, cart.CartItems)
	return copied
}
