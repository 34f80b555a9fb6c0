package response

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Auth is what the API hands back at login: the shopper and the bearer
// credential every later request carries.
type Auth struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
