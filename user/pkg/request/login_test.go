package request

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoginLogMasksPassword(t *testing.T) {
	buffer := bytes.Buffer{}
	logger := zerolog.New(&buffer)
	login := Login{Email: "farmer@example.com", Password: "hunter2secret"}

	logger.Info().Object("login", login).Msg("logging in")

	assert.Contains(t, buffer.String(), "farmer@example.com")
	assert.Contains(t, buffer.String(), "***")
	assert.NotContains(t, buffer.String(), "hunter2secret")
}

func TestLoginWireBodyKeepsPassword(t *testing.T) {
	login := Login{Email: "farmer@example.com", Password: "hunter2secret"}

	encoded, err := json.Marshal(login)

	assert.NoError(t, err)
	assert.Contains(t, string(encoded), "hunter2secret")
}
