package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string            `mapstructure:"environment"`
	Server       ServerConfig      `mapstructure:"server"`
	Search       SearchConfig      `mapstructure:"search"`
	OpenLibrary  OpenLibraryConfig `mapstructure:"open_library"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Sessions     SessionsConfig    `mapstructure:"sessions"`
	RateLimiting RateLimitConfig   `mapstructure:"rate_limiting"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// SearchConfig controls the results pipeline and the form defaults
type SearchConfig struct {
	// DefaultPageSize seeds a new session before URL state is applied. 0 disables it.
	DefaultPageSize int           `mapstructure:"default_page_size"`
	MaxPageSize     int           `mapstructure:"max_page_size"`
	Debounce        time.Duration `mapstructure:"debounce"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
}

// OpenLibraryConfig contains Open Library search API settings
type OpenLibraryConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	RateLimit int    `mapstructure:"rate_limit"` // requests per minute
	Burst     int    `mapstructure:"burst"`
}

// DatabaseConfig contains search history database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`

	// Retention is how long searches are kept. 0 keeps them forever.
	Retention     time.Duration `mapstructure:"retention"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

// SessionsConfig contains interactive session settings
type SessionsConfig struct {
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	EventBuffer     int           `mapstructure:"event_buffer"`
}

// RateLimitConfig contains inbound rate limiting settings
type RateLimitConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	SearchRPS   int  `mapstructure:"search_rps"`
	SearchBurst int  `mapstructure:"search_burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}
