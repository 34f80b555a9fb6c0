package request

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPaymentInfoLogMasksCardAndCvv(t *testing.T) {
	buffer := bytes.Buffer{}
	logger := zerolog.New(&buffer)
	payment := PaymentInfo{
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/27",
		Cvv:            "123",
		CardholderName: "Nimal Perera",
	}

	logger.Info().Object("payment", payment).Msg("submitting payment")

	assert.Contains(t, buffer.String(), "**** **** **** 1111")
	assert.NotContains(t, buffer.String(), "4111111111111111")
	assert.NotContains(t, buffer.String(), `"cvv":"123"`)
}

func TestPaymentInfoJSONMasksCardAndCvv(t *testing.T) {
	payment := PaymentInfo{
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/27",
		Cvv:            "123",
		CardholderName: "Nimal Perera",
	}

	encoded, err := json.Marshal(payment)

	assert.NoError(t, err)
	decoded := map[string]string{}
	assert.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "**** **** **** 1111", decoded["card_number"])
	assert.Equal(t, "***", decoded["cvv"])
	assert.Equal(t, "Nimal Perera", decoded["cardholder_name"])
}

func TestMaskCardShortNumbers(t *testing.T) {
	assert.Equal(t, "****", maskCard(""))
	assert.Equal(t, "****", maskCard("1234"))
	assert.Equal(t, "**** **** **** 4321", maskCard("987654321"))
}
