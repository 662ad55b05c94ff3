package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eringolaw/fdic-bank-explorer/internal/config"
)

func newTestApp() *Application {
	return &Application{
		Config: config.Default(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		FrontendFS: fstest.MapFS{
			"index.html": &fstest.MapFile{Data: []byte("<html>explorer</html>")},
			"app.js":     &fstest.MapFile{Data: []byte("console.log('explorer')")},
		},
	}
}

func TestInitializeServicesFailsWhenDatasetMissing(t *testing.T) {
	app := newTestApp()
	app.Config.Data.InstitutionsFile = "testdata/does-not-exist/institutions.csv"
	app.Config.Data.LocationsFile = "testdata/does-not-exist/locations.csv"

	err := app.initializeServices()
	require.Error(t, err)
	assert.ErrorContains(t, err, "load dataset")
	assert.ErrorContains(t, err, "does-not-exist/institutions.csv")
}

func TestServeFrontend(t *testing.T) {
	app := newTestApp()
	handler := app.serveFrontend()

	tests := []struct {
		name        string
		path        string
		wantBody    string
		contentType string
	}{
		{"root serves index", "/", "<html>explorer</html>", "text/html; charset=utf-8"},
		{"exact file", "/app.js", "console.log('explorer')", "application/javascript"},
		{"unknown route falls back to index", "/some/client/route", "<html>explorer</html>", "text/html; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
		})
	}
}

func TestServeFrontendWithoutIndex(t *testing.T) {
	app := newTestApp()
	app.FrontendFS = fstest.MapFS{}

	rec := httptest.NewRecorder()
	app.serveFrontend()(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSConfigDebugAddsLocalOrigins(t *testing.T) {
	app := newTestApp()
	app.Config.Server.Debug = true
	app.Config.Server.Port = 8050

	cfg := app.corsConfig()
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:8050")
	assert.Contains(t, cfg.AllowedOrigins, "http://127.0.0.1:8050")
}

func TestCORSConfigProductionUsesConfiguredOrigins(t *testing.T) {
	app := newTestApp()
	app.Config.Server.Debug = false
	app.Config.Security.AllowedOrigins = []string{"https://explorer.example.com"}

	cfg := app.corsConfig()
	assert.Equal(t, []string{"https://explorer.example.com"}, cfg.AllowedOrigins)
}

func TestGenerateBuildID(t *testing.T) {
	id := generateBuildID()
	assert.Len(t, id, 12)
}
