package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parrotdev/parrot/internal/api"
	"github.com/parrotdev/parrot/internal/service"
)

type stubCore struct {
	healthErr error
}

func (stubCore) HelloWorld() string {
	return service.HelloWorldMessage
}

func (s stubCore) CheckHealth(context.Context) error {
	return s.healthErr
}

func TestGatewayRouting(t *testing.T) {
	t.Parallel()

	router := api.NewServer(stubCore{})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "v1 health", method: http.MethodGet, path: "/v1/health", wantStatus: http.StatusOK},
		{name: "v1 healthz", method: http.MethodGet, path: "/v1/healthz", wantStatus: http.StatusOK},
		{name: "v2 health", method: http.MethodGet, path: "/v2/health", wantStatus: http.StatusOK},
		{name: "v1 hello-world", method: http.MethodGet, path: "/v1/hello-world", wantStatus: http.StatusOK},
		{name: "v2 hello-world", method: http.MethodGet, path: "/v2/hello-world", wantStatus: http.StatusOK},
		{name: "v1 echo", method: http.MethodPost, path: "/v1/echo", body: `{"text": "hi"}`, wantStatus: http.StatusOK},
		{name: "v2 echo", method: http.MethodPost, path: "/v2/echo", body: `{"utterance": "hi"}`, wantStatus: http.StatusOK},
		{name: "v1 docs", method: http.MethodGet, path: "/v1/docs", wantStatus: http.StatusOK},
		{name: "v2 docs", method: http.MethodGet, path: "/v2/docs", wantStatus: http.StatusOK},
		{name: "catalog", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "unmounted version prefix", method: http.MethodGet, path: "/v3/health", wantStatus: http.StatusNotFound},
		{name: "unprefixed route", method: http.MethodGet, path: "/hello-world", wantStatus: http.StatusNotFound},
		{name: "wrong verb on echo", method: http.MethodGet, path: "/v1/echo", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestGatewayVersionIsolation(t *testing.T) {
	t.Parallel()

	router := api.NewServer(stubCore{})

	// The v2 echo field must not be accepted under the v1 prefix.
	req := httptest.NewRequest(http.MethodPost, "/v1/echo", bytes.NewBufferString(`{"utterance": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	// Both versions serve the same greeting.
	var messages []string
	for _, path := range []string{"/v1/hello-world", "/v2/hello-world"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		messages = append(messages, got["message"])
	}
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, "Hello, world!", messages[0])
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	router := api.NewServer(stubCore{}, api.WithBaseURL("http://10.0.0.5:9999"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var catalog api.Catalog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &catalog))
	require.Len(t, catalog.Versions, 2)

	assert.Equal(t, "v1", catalog.Versions[0].Name)
	assert.Equal(t, "v2", catalog.Versions[1].Name)

	// Advertised docs links reflect the configured bind address.
	assert.Equal(t, "http://10.0.0.5:9999/v1/docs", catalog.Versions[0].ExternalDocs)
	assert.Equal(t, "http://10.0.0.5:9999/v2/docs", catalog.Versions[1].ExternalDocs)
}

func TestGatewayUnhealthyPassthrough(t *testing.T) {
	t.Parallel()

	router := api.NewServer(stubCore{healthErr: assert.AnError})

	for _, path := range []string{"/v1/health", "/v1/healthz", "/v2/health", "/v2/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "DOWN", got["status"], path)
		assert.NotEmpty(t, got["reason"], path)
	}
}
