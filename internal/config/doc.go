// Package config provides centralized configuration management for the
// FDIC Bank Explorer. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FDIC_* for namespacing:
//
//	FDIC_SERVER_PORT=8050
//	FDIC_SERVER_DEBUG=true
//	FDIC_DATA_INSTITUTIONS_FILE=data/institutions.csv
//	FDIC_LOGGING_LEVEL=info
//
// FDIC_CONFIG_FILE points at an explicit YAML file; otherwise
// ./config.yaml and ./configs/config.yaml are probed.
package config
