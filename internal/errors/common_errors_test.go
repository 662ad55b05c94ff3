package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeDataset,
				Message: "institutions file unreadable",
				Cause:   errors.New("permission denied"),
			},
			wantMessage: "[DATASET] institutions file unreadable: permission denied",
		},
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "malformed CSV row",
			},
			wantMessage: "[PARSING] malformed CSV row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("file does not exist")
	appErr := NewDatasetError("locations file missing", cause)

	assert.True(t, errors.Is(appErr, cause))

	var target *AppError
	require.True(t, errors.As(appErr, &target))
	assert.Equal(t, ErrTypeDataset, target.Type)
}

func TestAppError_WithContext(t *testing.T) {
	appErr := NewDatasetError("load failed", nil).
		WithContext("path", "data/institutions.csv").
		WithContext("rows", 0)

	assert.Equal(t, "data/institutions.csv", appErr.Context["path"])
	assert.Equal(t, 0, appErr.Context["rows"])
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		got      *AppError
		wantType ErrorType
	}{
		{"dataset error", NewDatasetError("load failed", nil), ErrTypeDataset},
		{"network error", NewNetworkError("fetch failed", nil), ErrTypeNetwork},
		{"parsing error", NewParsingError("bad header", nil), ErrTypeParsing},
		{"storage error", NewStorageError("write failed", nil), ErrTypeStorage},
		{"validation error", NewAppValidationError("bad input"), ErrTypeValidation},
		{"not found error", NewNotFoundError("institution"), ErrTypeNotFound},
		{"permission error", NewPermissionError("denied"), ErrTypePermission},
		{"config error", NewConfigError("invalid port", nil), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.got)
			assert.Equal(t, tt.wantType, tt.got.Type)
			assert.NotEmpty(t, tt.got.Message)
		})
	}
}
