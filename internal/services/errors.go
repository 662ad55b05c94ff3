package services

import "errors"

// Dashboard service errors
var (
	// Institution errors
	ErrInstitutionNotFound = errors.New("institution not found")
	ErrNoBranchesFound     = errors.New("no branches found")

	// Geography errors
	ErrUnknownState = errors.New("unknown state")

	// Export errors
	ErrInvalidExportFormat = errors.New("invalid export format")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)
