package request

import (
	"github.com/rs/zerolog"
)

type Login struct {
	Email    string `validate:"required,emailshape" json:"email"`
	Password string `validate:"required"            json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}
