package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog record as listed on the marketplace. Cart lines copy
// it verbatim at add-time and treat the copy as an opaque read-only snapshot.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Location  string          `json:"location"`
	Category  string          `json:"category"`
	Rating    float64         `json:"rating"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
