package request

import (
	"github.com/google/uuid"
)

type AddCartItem struct {
	ProductID uuid.UUID `validate:"required,uuid"  json:"product_id"`
	Quantity  int32     `validate:"required,gte=1" json:"quantity"`
}

type UpdateCartItem struct {
	Quantity int32 `validate:"required,gte=1" json:"quantity"`
}
