package errors

import (
	"errors"
)

var (
	ErrEmptyAuth       = errors.New("missing authorization")
	ErrEmptySubject    = errors.New("missing subject")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrProductNotFound = errors.New("product not found")
	ErrCartItemGone    = errors.New("cart item not found")
	ErrCropNotFound    = errors.New("crop record not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrWrongStep       = errors.New("operation not allowed in current checkout step")
	ErrStoreClosed     = errors.New("cart store is closed")
)
