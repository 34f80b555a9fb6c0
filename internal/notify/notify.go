package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/internal/log"
)

// Notifier receives the transient user-visible notifications the storefront
// shows as toasts: cart mutations report success or failure through it.
type Notifier interface {
	Success(c context.Context, message string)
	Error(c context.Context, message string)
}

// LogNotifier surfaces notifications on the structured log. The terminal
// storefront has no toast overlay, the log line is the toast.
type LogNotifier struct{}

func (LogNotifier) Success(c context.Context, message string) {
	zerolog.Ctx(c).Info().Str(log.KeyTag, "notify").Str("kind", "success").Msg(message)
}

func (LogNotifier) Error(c context.Context, message string) {
	zerolog.Ctx(c).Error().Str(log.KeyTag, "notify").Str("kind", "error").Msg(message)
}
