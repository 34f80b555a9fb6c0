package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the display-only confirmation shown after a simulated checkout.
// OrderID is a client-generated token derived from the completion timestamp,
// not a durable identifier; the server never confirms it.
type Order struct {
	OrderID  string          `json:"order_id"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}
