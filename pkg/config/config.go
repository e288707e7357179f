package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BOOKSEARCH_SERVER_PORT.
const EnvPrefix = "BOOKSEARCH"

var (
	mu      sync.Mutex
	loaded  bool
	initErr error
)

// Init initializes the configuration system. Repeated calls are no-ops
// until Reset is called.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if loaded {
		return initErr
	}
	loaded = true
	initErr = load()
	return initErr
}

// Reset forgets the loaded configuration so the next Init reads it again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	loaded = false
	initErr = nil
	viper.Reset()
}

func load() error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean("./config/settings.yaml")
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	maxPageSize := viper.GetInt("search.max_page_size")
	if maxPageSize <= 0 {
		viper.Set("search.max_page_size", 100)
		maxPageSize = 100
	}

	defaultPageSize := viper.GetInt("search.default_page_size")
	if defaultPageSize < 0 || defaultPageSize > maxPageSize {
		return fmt.Errorf("invalid default page size: %d (must be between 0 and %d)", defaultPageSize, maxPageSize)
	}

	if viper.GetDuration("search.debounce") < 0 {
		return fmt.Errorf("invalid debounce: %s", viper.GetDuration("search.debounce"))
	}

	// Auto-correct a missing fetch timeout
	if viper.GetDuration("search.fetch_timeout") <= 0 {
		viper.Set("search.fetch_timeout", 5*time.Second)
	}

	if viper.GetString("open_library.base_url") == "" {
		return fmt.Errorf("open_library.base_url is required")
	}

	if viper.GetInt("sessions.event_buffer") <= 0 {
		viper.Set("sessions.event_buffer", 16)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}

	if c.Search.DefaultPageSize < 0 || c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("invalid default page size: %d", c.Search.DefaultPageSize)
	}

	if c.Search.FetchTimeout <= 0 {
		c.Search.FetchTimeout = 5 * time.Second
	}

	if c.Sessions.EventBuffer <= 0 {
		c.Sessions.EventBuffer = 16
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 0) // SSE streams stay open
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Search defaults
	viper.SetDefault("search.default_page_size", 25)
	viper.SetDefault("search.max_page_size", 100)
	viper.SetDefault("search.debounce", 300*time.Millisecond)
	viper.SetDefault("search.fetch_timeout", 5*time.Second)

	// Open Library defaults
	viper.SetDefault("open_library.base_url", "https://openlibrary.org")
	viper.SetDefault("open_library.user_agent", "BookSearch/1.0")
	viper.SetDefault("open_library.rate_limit", 100)
	viper.SetDefault("open_library.burst", 5)

	// Database defaults
	viper.SetDefault("database.path", "./data/history.db")
	viper.SetDefault("database.verbose", false)
	viper.SetDefault("database.retention", 30*24*time.Hour)
	viper.SetDefault("database.prune_interval", time.Hour)

	// Session defaults
	viper.SetDefault("sessions.idle_timeout", 30*time.Minute)
	viper.SetDefault("sessions.cleanup_interval", 5*time.Minute)
	viper.SetDefault("sessions.event_buffer", 16)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.search_rps", 5)
	viper.SetDefault("rate_limiting.search_burst", 10)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.json", false)
}
