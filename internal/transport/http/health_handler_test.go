package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eringolaw/fdic-bank-explorer/internal/services"
)

func newHealthServer(t *testing.T) *httptest.Server {
	t.Helper()
	hs := services.NewHealthService("0.1.0-test", "", nil, nil, slog.Default())
	handler := NewHealthHandler(hs, slog.Default())

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthCheckEndpoint(t *testing.T) {
	srv := newHealthServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "0.1.0-test", status["version"])
}

func TestReadinessEndpoint_NotReadyWithoutDataset(t *testing.T) {
	srv := newHealthServer(t)

	resp, err := http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLivenessEndpoint(t *testing.T) {
	srv := newHealthServer(t)

	resp, err := http.Get(srv.URL + "/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "alive", status["status"])
}
