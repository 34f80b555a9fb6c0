package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string, token string) *Client {
	return NewClient(serverURL, 5*time.Second, func() string { return token })
}

func TestClientDecodesDataFromEnvelope(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "success",
				"statusCode": 200,
				"message": "found products",
				"data": {"greeting": "ayubowan"}
			}`))
		}),
	)
	defer server.Close()

	out := struct {
		Greeting string `json:"greeting"`
	}{}
	err := newTestClient(server.URL, "").Get(context.Background(), "/api/products", &out)

	assert.NoError(t, err)
	assert.Equal(t, "ayubowan", out.Greeting)
}

func TestClientSurfacesEnvelopeFailureMessage(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{
				"status": "failed",
				"statusCode": 404,
				"message": "product not found",
				"data": {}
			}`))
		}),
	)
	defer server.Close()

	err := newTestClient(server.URL, "").Get(context.Background(), "/api/products/x", nil)

	apiErr := &Error{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "product not found", apiErr.Message)
	assert.EqualError(t, err, "product not found")
}

func TestClientFallsBackToGenericMessage(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "failure without message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"status": "failed", "statusCode": 500, "data": {}}`))
			},
		},
		{
			name: "failure with unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(test.handler)
			defer server.Close()

			err := newTestClient(server.URL, "").Get(context.Background(), "/api/cart", nil)

			apiErr := &Error{}
			assert.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "something went wrong, please try again", apiErr.Message)
		})
	}
}

func TestClientAttachesBearerToken(t *testing.T) {
	var authorization string
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"status": "success", "statusCode": 200, "message": "ok", "data": {}}`))
		}),
	)
	defer server.Close()

	err := newTestClient(server.URL, "token-123").Get(context.Background(), "/api/cart", nil)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer token-123", authorization)
}

func TestClientOmitsAuthorizationWhenSignedOut(t *testing.T) {
	var hasAuthorization bool
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasAuthorization = r.Header["Authorization"]
			_, _ = w.Write([]byte(`{"status": "success", "statusCode": 200, "message": "ok", "data": {}}`))
		}),
	)
	defer server.Close()

	err := newTestClient(server.URL, "").Get(context.Background(), "/api/products", nil)

	assert.NoError(t, err)
	assert.False(t, hasAuthorization)
}
