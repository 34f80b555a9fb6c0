// Package stubapi is an in-memory double of the remote ModGoviya REST API. It
// speaks the same /api envelope the production backend does, so the client
// core can be developed and tested against it without any network dependency.
// It is tooling, not the production backend.
package stubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/otel/trace"

	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/common/validate"
	inHttp "github.com/NadeeshaMedagama/modgoviya/internal/http"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/middleware"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

type Server struct {
	secretKey string
	store     *memoryStore
	validate  *validator.Validate
}

func NewServer(secretKey string) *Server {
	return &Server{
		secretKey: secretKey,
		store:     newMemoryStore(),
		validate:  validate.New(),
	}
}

// Router wires the /api surface: public auth and product listing, bearer-
// guarded cart and crop endpoints, and /metrics.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(common.AppApiService),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler())

	api := router.PathPrefix(common.ApiBasePath).Subrouter()
	api.HandleFunc("/auth/register", s.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/oauth/{provider}", s.OAuthExchange).Methods(http.MethodPost)
	api.HandleFunc("/products", s.FindProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}", s.FindProductById).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(s.secretKey))
	protected.HandleFunc("/cart", s.FetchCart).Methods(http.MethodGet)
	protected.HandleFunc("/cart", s.AddCartItem).Methods(http.MethodPost)
	protected.HandleFunc("/cart", s.ClearCart).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/{cartItemId}", s.UpdateCartItem).Methods(http.MethodPut)
	protected.HandleFunc("/cart/{cartItemId}", s.RemoveCartItem).Methods(http.MethodDelete)
	protected.HandleFunc("/crops", s.FindCrops).Methods(http.MethodGet)
	protected.HandleFunc("/crops", s.CreateCrop).Methods(http.MethodPost)
	protected.HandleFunc("/crops/{cropId}", s.UpdateCrop).Methods(http.MethodPut)
	protected.HandleFunc("/crops/{cropId}", s.RemoveCrop).Methods(http.MethodDelete)

	return router
}

// decodeAndValidate reads the request body into out and runs validations,
// answering 400 itself when either fails.
func (s *Server) decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	span trace.Span,
	out interface{},
) bool {
	c := r.Context()
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "decoding request body").Logger()

	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return false
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	if err := s.validate.StructCtx(c, out); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeFailed(c context.Context, w http.ResponseWriter, statusCode int, message string) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": statusCode,
		"message":    message,
	})
}

func writeSuccess(
	c context.Context,
	w http.ResponseWriter,
	statusCode int,
	message string,
	data map[string]interface{},
) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": statusCode,
		"message":    message,
		"data":       data,
	})
}
