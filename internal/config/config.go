package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Fetcher   FetcherConfig   `yaml:"fetcher" envconfig:"FETCHER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration. The port and debug
// defaults carry over the original dashboard's process contract.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8050"`
	Host            string        `yaml:"host" envconfig:"HOST" default:"0.0.0.0"`
	Debug           bool          `yaml:"debug" envconfig:"DEBUG" default:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DataConfig locates the two dataset files loaded at startup
type DataConfig struct {
	InstitutionsFile string `yaml:"institutions_file" envconfig:"INSTITUTIONS_FILE" default:"data/institutions.csv"`
	LocationsFile    string `yaml:"locations_file" envconfig:"LOCATIONS_FILE" default:"data/locations.csv"`
}

// FetcherConfig controls the BankFind API fetcher binary
type FetcherConfig struct {
	BaseURL      string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://api.fdic.gov/banks"`
	PageSize     int           `yaml:"page_size" envconfig:"PAGE_SIZE" default:"10000"`
	PaceInterval time.Duration `yaml:"pace_interval" envconfig:"PACE_INTERVAL" default:"500ms"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8050"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// WebSocketConfig contains WebSocket session channel configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"4096"`
	MaxMessageSize  int64         `yaml:"max_message_size" envconfig:"MAX_MESSAGE_SIZE" default:"4096"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD" default:"30s"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT" default:"60s"`
}

// Load loads configuration from environment variables and config file.
// Precedence: environment > config file > defaults.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FDIC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence,
// zero-valued env fields fall back to the file)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.Host == "" {
		envConfig.Server.Host = fileConfig.Server.Host
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Data.InstitutionsFile == "" {
		envConfig.Data.InstitutionsFile = fileConfig.Data.InstitutionsFile
	}
	if envConfig.Data.LocationsFile == "" {
		envConfig.Data.LocationsFile = fileConfig.Data.LocationsFile
	}
	if envConfig.Fetcher.BaseURL == "" {
		envConfig.Fetcher.BaseURL = fileConfig.Fetcher.BaseURL
	}
	if envConfig.Fetcher.PageSize == 0 {
		envConfig.Fetcher.PageSize = fileConfig.Fetcher.PageSize
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Data.InstitutionsFile == "" {
		return fmt.Errorf("institutions file path must not be empty")
	}

	if c.Data.LocationsFile == "" {
		return fmt.Errorf("locations file path must not be empty")
	}

	if c.Fetcher.PageSize < 1 || c.Fetcher.PageSize > MaxFetchPageSize {
		return fmt.Errorf("fetcher page size must be in 1..%d: %d", MaxFetchPageSize, c.Fetcher.PageSize)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "stdout", "stderr", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path must not be empty for output %q", c.Logging.Output)
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	return nil
}

// getConfigFilePath returns the path to the config file. FDIC_CONFIG_FILE
// overrides the default lookup locations.
func getConfigFilePath() string {
	if path := os.Getenv("FDIC_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			Host:            "0.0.0.0",
			Debug:           true,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Data: DataConfig{
			InstitutionsFile: DefaultInstitutionsFile,
			LocationsFile:    DefaultLocationsFile,
		},
		Fetcher: FetcherConfig{
			BaseURL:      DefaultBankFindBaseURL,
			PageSize:     MaxFetchPageSize,
			PaceInterval: DefaultPaceInterval,
			Timeout:      DefaultHTTPTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8050"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			MaxMessageSize:  4096,
			PingPeriod:      30 * time.Second,
			PongWait:        60 * time.Second,
		},
	}
}
