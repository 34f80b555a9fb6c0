package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	inHttp "github.com/NadeeshaMedagama/modgoviya/internal/http"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
)

// Auth verifies the bearer credential and attaches the shopper id to the
// request context.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" || !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := authorization[len("bearer "):]
			userID, err := common.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().
					Err(inErrors.ErrTokenInvalid).
					Msg(inErrors.ErrTokenInvalid.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = common.AttachUserIDToContext(c, userID)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
