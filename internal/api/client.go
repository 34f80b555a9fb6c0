package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inHttp "github.com/NadeeshaMedagama/modgoviya/internal/http"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

const genericErrorMessage = "something went wrong, please try again"

// TokenSource supplies the bearer credential attached to every request. It
// returns the empty string while no shopper is signed in.
type TokenSource func() string

// Client speaks the API envelope: every response carries status, statusCode,
// message and a data object.
type Client struct {
	baseUrl string
	token   TokenSource
	http    *http.Client
}

func NewClient(baseUrl string, timeout time.Duration, token TokenSource) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Error is the flat failure surface of the remote API: a status code and a
// human-readable message, nothing finer grained.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (t *Client) Get(c context.Context, path string, out interface{}) error {
	return t.Do(c, http.MethodGet, path, nil, out)
}

func (t *Client) Post(c context.Context, path string, body interface{}, out interface{}) error {
	return t.Do(c, http.MethodPost, path, body, out)
}

func (t *Client) Put(c context.Context, path string, body interface{}, out interface{}) error {
	return t.Do(c, http.MethodPut, path, body, out)
}

func (t *Client) Delete(c context.Context, path string, out interface{}) error {
	return t.Do(c, http.MethodDelete, path, nil, out)
}

func (t *Client) Do(
	c context.Context,
	method string,
	path string,
	body interface{},
	out interface{},
) error {
	c, span := otel.Tracer.Start(c, "ApiClient Do")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ApiClient Do").
		Str(log.KeyRequestMethod, method).
		Str(log.KeyRequestURI, path).
		Logger()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed encoding request body with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(c, method, t.baseUrl+path, reader)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set(inHttp.KeyHeaderContentType, inHttp.ValueApplicationJson)
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Set(inHttp.KeyHeaderRequestId, requestId)
	}
	if token := t.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Info().Msgf("requesting %s %s", method, path)
	resp, err := t.http.Do(req)
	if err != nil {
		err = fmt.Errorf("failed requesting %s %s with error=%w", method, path, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return &Error{StatusCode: 0, Message: genericErrorMessage}
	}
	defer resp.Body.Close()

	env := envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		err = fmt.Errorf("failed decoding response body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if resp.StatusCode >= http.StatusBadRequest {
			return &Error{StatusCode: resp.StatusCode, Message: genericErrorMessage}
		}
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest || env.Status == "failed" {
		message := env.Message
		if message == "" {
			message = genericErrorMessage
		}
		apiErr := &Error{StatusCode: resp.StatusCode, Message: message}
		otel.RecordError(apiErr, span)
		logger.Error().
			Int(log.KeyResponseCode, resp.StatusCode).
			Err(apiErr).
			Msgf("request %s %s failed with message=%s", method, path, message)
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			err = fmt.Errorf("failed decoding response data with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	logger.Info().Msgf("requested %s %s", method, path)
	return nil
}
