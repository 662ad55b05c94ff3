package config

import "time"

// Application constants for the FDIC Bank Explorer system
const (
	// Application Info
	AppName   = "FDIC Bank Explorer"
	AppVendor = "Eringolaw"

	// Server defaults. 8050 mirrors the dashboard the explorer replaces.
	DefaultPort = 8050

	// Dataset file defaults (relative to the working directory)
	DefaultInstitutionsFile = "data/institutions.csv"
	DefaultLocationsFile    = "data/locations.csv"

	// BankFind API
	DefaultBankFindBaseURL = "https://api.fdic.gov/banks"
	InstitutionsEndpoint   = "/institutions"
	LocationsEndpoint      = "/locations"

	// MaxFetchPageSize is the hard page-size cap of the BankFind API.
	MaxFetchPageSize = 10000

	// DefaultPaceInterval spaces fetch page requests to respect rate limits.
	DefaultPaceInterval = 500 * time.Millisecond

	// Network Timeouts
	DefaultHTTPTimeout  = 60 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50
)
