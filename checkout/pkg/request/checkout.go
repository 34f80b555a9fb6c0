package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// ShippingInfo is step one of the checkout wizard. Every field is required;
// the email only has to look like an address.
type ShippingInfo struct {
	FullName   string `validate:"required"            json:"full_name"`
	Email      string `validate:"required,emailshape" json:"email"`
	Phone      string `validate:"required"            json:"phone"`
	Address    string `validate:"required"            json:"address"`
	City       string `validate:"required"            json:"city"`
	PostalCode string `validate:"required"            json:"postal_code"`
	Country    string `validate:"required"            json:"country"`
}

// PaymentInfo is step two. The card number may contain spaces or dashes but
// must normalize to exactly 16 digits; the CVV is exactly 3 digits.
type PaymentInfo struct {
	CardNumber     string `validate:"required,cardnumber" json:"card_number"`
	ExpiryDate     string `validate:"required"            json:"expiry_date"`
	Cvv            string `validate:"required,cvv"        json:"cvv"`
	CardholderName string `validate:"required"            json:"cardholder_name"`
}

func (p PaymentInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("card_number", maskCard(p.CardNumber)).
		Str("expiry_date", p.ExpiryDate).
		Str("cvv", "***").
		Str("cardholder_name", p.CardholderName)
}

func (p PaymentInfo) MarshalJSON() ([]byte, error) {
	p.CardNumber = maskCard(p.CardNumber)
	p.Cvv = "***"
	type P PaymentInfo
	return json.Marshal(P(p))
}

func maskCard(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return "****"
	}
	return "**** **** **** " + cardNumber[len(cardNumber)-4:]
}
