package validate

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// The original storefront accepted any "text@text.text" shaped address,
	// nothing stricter.
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsOnly = regexp.MustCompile(`^[0-9]+$`)

	cardSeparators = strings.NewReplacer(" ", "", "-", "")
)

// NormalizeCardNumber strips the separators shoppers type into card numbers.
func NormalizeCardNumber(s string) string {
	return cardSeparators.Replace(s)
}

func ValidateEmailShape(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return emailShape.MatchString(value)
}

func ValidateCardNumber(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	normalized := NormalizeCardNumber(value)
	return len(normalized) == 16 && digitsOnly.MatchString(normalized)
}

func ValidateCvv(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(value) == 3 && digitsOnly.MatchString(value)
}

// New returns a validator with the checkout-specific validations registered
// and field names taken from json tags, so validation errors name the fields
// the way the API speaks about them.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("emailshape", ValidateEmailShape)
	_ = validate.RegisterValidation("cardnumber", ValidateCardNumber)
	_ = validate.RegisterValidation("cvv", ValidateCvv)
	return validate
}
