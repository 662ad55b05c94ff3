package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Eringolaw/fdic-bank-explorer/internal/dataset"
	apierrors "github.com/Eringolaw/fdic-bank-explorer/internal/errors"
	"github.com/Eringolaw/fdic-bank-explorer/internal/services"
)

const institutionsFixture = `CERT,NAME,CITY,STNAME,ZIP,ADDRESS,BKCLASS,CHARTER,ACTIVE,INSDATE,REGAGENT,ASSET,DEP,LATITUDE,LONGITUDE,WEBADDR
628,First National Bank,Dallas,Texas,75201,100 Main St,N,NATIONAL,1,1934-01-01,OCC,1000000,800000,32.78,-96.80,https://fnb.example.com
942,Oak Savings Bank,Tulsa,Oklahoma,74103,9 Elm Ave,SM,STATE,1,1952-06-15,FED,500000,420000,36.15,-95.99,
`

const locationsFixture = `CERT,UNINUM,NAME,OFFNAME,OFFNUM,ADDRESS,CITY,STNAME,ZIP,COUNTY,SERVTYPE_DESC,MAINOFF,ESTYMD,LATITUDE,LONGITUDE
628,1,First National Bank,Main Office,0,100 Main St,Dallas,Texas,75201,Dallas,Full Service,1,1934-01-01,32.78,-96.80
628,2,First National Bank,Tulsa Branch,1,40 Cedar Rd,Tulsa,Oklahoma,74103,Tulsa,Full Service,0,1990-09-12,36.15,-95.99
942,3,Oak Savings Bank,Main Office,0,9 Elm Ave,Tulsa,Oklahoma,74103,Tulsa,Full Service,1,1952-06-15,36.16,-95.98
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	instPath := filepath.Join(dir, "institutions.csv")
	locPath := filepath.Join(dir, "locations.csv")
	require.NoError(t, os.WriteFile(instPath, []byte(institutionsFixture), 0o644))
	require.NoError(t, os.WriteFile(locPath, []byte(locationsFixture), 0o644))

	store, err := dataset.Load(context.Background(), instPath, locPath, slog.Default())
	require.NoError(t, err)

	svc, err := services.NewDashboardService(store, slog.Default())
	require.NoError(t, err)

	logger := slog.Default()
	handler := NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger, false))

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Count  int             `json:"count"`
}

func getEnvelope(t *testing.T, srv *httptest.Server, path string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestGetStates(t *testing.T) {
	srv := newTestServer(t)

	code, env := getEnvelope(t, srv, "/geo/states")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	var states []string
	require.NoError(t, json.Unmarshal(env.Data, &states))
	assert.Equal(t, []string{"Oklahoma", "Texas"}, states)
	assert.Equal(t, 2, env.Count)
}

func TestGetCounties(t *testing.T) {
	srv := newTestServer(t)

	t.Run("known state", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/geo/counties?state=Texas")
		require.Equal(t, http.StatusOK, code)

		var counties []string
		require.NoError(t, json.Unmarshal(env.Data, &counties))
		assert.Equal(t, []string{"ALL", "Dallas"}, counties)
	})

	t.Run("unknown state yields problem", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/geo/counties?state=Atlantis")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var problem map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
		assert.EqualValues(t, http.StatusBadRequest, problem["status"])
	})
}

func TestGetInstitution(t *testing.T) {
	srv := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/institutions/628")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(env.Data), "First National Bank")
	})

	t.Run("float artifact cert", func(t *testing.T) {
		code, _ := getEnvelope(t, srv, "/institutions/628.0")
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/institutions/999999")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
	})
}

func TestGetBranches(t *testing.T) {
	srv := newTestServer(t)

	code, env := getEnvelope(t, srv, "/institutions/628/branches")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, env.Count)
}

func TestGetStateAggregate(t *testing.T) {
	srv := newTestServer(t)

	code, env := getEnvelope(t, srv, "/aggregates/states?cert=628")
	require.Equal(t, http.StatusOK, code)

	var agg struct {
		Items []struct {
			Label string `json:"label"`
			Count int    `json:"count"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &agg))
	require.Len(t, agg.Items, 2)
	assert.Equal(t, "Oklahoma", agg.Items[0].Label)
	assert.Equal(t, "Texas", agg.Items[1].Label)
}

func TestGetTableRows(t *testing.T) {
	srv := newTestServer(t)

	t.Run("empty selection shows prompt", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/table/rows")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 0, env.Count)
		assert.Contains(t, string(env.Data), "message")
	})

	t.Run("cert selection", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/table/rows?cert=628")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 2, env.Count)
	})
}

func TestGetMapPoints(t *testing.T) {
	srv := newTestServer(t)

	code, env := getEnvelope(t, srv, "/map/points?cert=628")
	require.Equal(t, http.StatusOK, code)

	var view struct {
		Points []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"points"`
		Zoom int `json:"zoom"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Len(t, view.Points, 2)
}

func TestExportTable(t *testing.T) {
	srv := newTestServer(t)

	t.Run("csv", func(t *testing.T) {
		body := strings.NewReader(`{"cert":"628","format":"csv"}`)
		resp, err := http.Post(srv.URL+"/table/export", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

		var buf bytes.Buffer
		_, err = buf.ReadFrom(resp.Body)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "Institution Name")
	})

	t.Run("xlsx", func(t *testing.T) {
		body := strings.NewReader(`{"cert":"628","format":"xlsx"}`)
		resp, err := http.Post(srv.URL+"/table/export", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

		f, err := excelize.OpenReader(resp.Body)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Branches")
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("invalid format", func(t *testing.T) {
		body := strings.NewReader(`{"cert":"628","format":"pdf"}`)
		resp, err := http.Post(srv.URL+"/table/export", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		body := strings.NewReader("cert=628&format=csv")
		resp, err := http.Post(srv.URL+"/table/export", "application/x-www-form-urlencoded", body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})
}

func TestHandleServiceErrorMapsExportFormat(t *testing.T) {
	logger := slog.Default()
	h := NewDashboardHandler(nil, logger, apierrors.NewErrorHandler(logger, false))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/table/export", nil)
	h.handleServiceError(rec, req, fmt.Errorf("%w: %q", services.ErrInvalidExportFormat, "pdf"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid-export-format")
}
