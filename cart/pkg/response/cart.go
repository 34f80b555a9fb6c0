package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogResponse "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/response"
)

// Cart is the server's authoritative snapshot of a shopper's cart. Every
// mutation returns a whole replacement snapshot; the client never patches
// lines locally.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CartItems []CartItem `json:"cart_items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product/quantity pairing. Product is the catalog snapshot
// copied at add-time; quantity stays >= 1, removal deletes the line instead.
type CartItem struct {
	ID        uuid.UUID               `json:"id"`
	CartID    uuid.UUID               `json:"cart_id"`
	Product   catalogResponse.Product `json:"product"`
	Quantity  int32                   `json:"quantity"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Subtotal is the sum of price x quantity over all lines, before shipping and
// tax (both of which the storefront fixes at zero).
func (t Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range t.CartItems {
		subtotal = subtotal.Add(
			item.Product.Price.Mul(decimal.NewFromInt32(item.Quantity)),
		)
	}
	return subtotal
}

func (t Cart) IsEmpty() bool {
	return len(t.CartItems) == 0
}
