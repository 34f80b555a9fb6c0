package response

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalogResponse "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/response"
)

func item(price string, quantity int32) CartItem {
	return CartItem{
		ID:       uuid.New(),
		Product:  catalogResponse.Product{ID: uuid.New(), Price: decimal.RequireFromString(price)},
		Quantity: quantity,
	}
}

func TestCartSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		cart     Cart
		expected string
	}{
		{
			name:     "empty cart is zero",
			cart:     Cart{},
			expected: "0",
		},
		{
			name:     "single line multiplies price by quantity",
			cart:     Cart{CartItems: []CartItem{item("1250.00", 3)}},
			expected: "3750.00",
		},
		{
			name:     "lines are summed",
			cart:     Cart{CartItems: []CartItem{item("1250.00", 2), item("780.50", 1)}},
			expected: "3280.50",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expected := decimal.RequireFromString(test.expected)
			assert.True(
				t,
				test.cart.Subtotal().Equal(expected),
				"expected subtotal %s got %s", expected, test.cart.Subtotal(),
			)
		})
	}
}

func TestCartIsEmpty(t *testing.T) {
	assert.True(t, Cart{}.IsEmpty())
	assert.False(t, Cart{CartItems: []CartItem{item("10.00", 1)}}.IsEmpty())
}
