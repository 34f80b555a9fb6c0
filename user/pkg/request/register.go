package request

import (
	"github.com/rs/zerolog"
)

type Register struct {
	Username string `validate:"required"            json:"username"`
	Email    string `validate:"required,emailshape" json:"email"`
	Password string `validate:"required,min=8"      json:"password"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("username", r.Username).Str("password", "***")
}

// OAuthExchange trades a provider access token for a ModGoviya session.
type OAuthExchange struct {
	Provider    string `validate:"required,oneof=google facebook" json:"provider"`
	AccessToken string `validate:"required"                       json:"access_token"`
	Email       string `validate:"required,emailshape"            json:"email"`
	Username    string `validate:"required"                       json:"username"`
}
