package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Eringolaw/fdic-bank-explorer/internal/errors"
	"github.com/Eringolaw/fdic-bank-explorer/internal/shared/testutil"
)

func newTestValidation(t *testing.T) *ValidationMiddleware {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false))
}

func TestValidateRequest_InvalidJSON(t *testing.T) {
	m := newTestValidation(t)

	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/table/export", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateRequest_SkipsGET(t *testing.T) {
	m := newTestValidation(t)

	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/geo/states", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateStruct_CustomValidators(t *testing.T) {
	m := newTestValidation(t)

	type req struct {
		Cert  string `json:"cert" validate:"required,cert"`
		State string `json:"state" validate:"omitempty,state_abbr"`
	}

	tests := []struct {
		name    string
		input   req
		wantErr bool
	}{
		{"valid cert", req{Cert: "3510"}, false},
		{"cert with float artifact", req{Cert: "3510.0"}, false},
		{"cert with letters", req{Cert: "35A0"}, true},
		{"empty cert", req{Cert: ""}, true},
		{"valid state", req{Cert: "1", State: "TX"}, false},
		{"lowercase state", req{Cert: "1", State: "tx"}, true},
		{"long state", req{Cert: "1", State: "TEX"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateStruct(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestContentTypeValidator(t *testing.T) {
	handler := ContentTypeValidator("application/json")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("accepts json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects xml", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("<x/>"))
		req.Header.Set("Content-Type", "application/xml")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}
