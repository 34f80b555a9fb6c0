package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "spaces are stripped", input: "4111 1111 1111 1111", expected: "4111111111111111"},
		{name: "dashes are stripped", input: "4111-1111-1111-1111", expected: "4111111111111111"},
		{name: "plain number is unchanged", input: "4111111111111111", expected: "4111111111111111"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, NormalizeCardNumber(test.input))
		})
	}
}

func TestCheckoutValidations(t *testing.T) {
	type form struct {
		Email      string `validate:"omitempty,emailshape" json:"email"`
		CardNumber string `validate:"omitempty,cardnumber" json:"card_number"`
		Cvv        string `validate:"omitempty,cvv"        json:"cvv"`
	}

	tests := []struct {
		name  string
		input form
		valid bool
	}{
		{name: "simple email", input: form{Email: "farmer@example.com"}, valid: true},
		{name: "email without at", input: form{Email: "farmer.example.com"}, valid: false},
		{name: "email without domain dot", input: form{Email: "farmer@example"}, valid: false},
		{name: "email with spaces", input: form{Email: "far mer@example.com"}, valid: false},
		{name: "16 digit card", input: form{CardNumber: "4111111111111111"}, valid: true},
		{name: "card with spaces", input: form{CardNumber: "4111 1111 1111 1111"}, valid: true},
		{name: "card with dashes", input: form{CardNumber: "4111-1111-1111-1111"}, valid: true},
		{name: "15 digit card", input: form{CardNumber: "411111111111111"}, valid: false},
		{name: "17 digit card", input: form{CardNumber: "41111111111111111"}, valid: false},
		{name: "card with letters", input: form{CardNumber: "4111x111111111111"}, valid: false},
		{name: "3 digit cvv", input: form{Cvv: "123"}, valid: true},
		{name: "2 digit cvv", input: form{Cvv: "12"}, valid: false},
		{name: "4 digit cvv", input: form{Cvv: "1234"}, valid: false},
		{name: "cvv with letters", input: form{Cvv: "12a"}, valid: false},
	}

	validate := New()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validate.Struct(test.input)
			if test.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}
