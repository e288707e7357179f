package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty working directory so the fixed
// ./config/settings.yaml location can be controlled.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
	return dir
}

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "settings.yaml"), []byte(content), 0o644))
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings.yaml",
			setup: func(t *testing.T, dir string) {
				writeSettings(t, dir, `
server:
  host: "127.0.0.1"
  port: 8081
search:
  default_page_size: 10
`)
			},
			check: func(t *testing.T) {
				assert.Equal(t, 8081, GetInt("server.port"))
				assert.Equal(t, 10, GetInt("search.default_page_size"))
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T, dir string) {
				writeSettings(t, dir, `
server:
  port: 8081
`)
				t.Setenv("BOOKSEARCH_SERVER_PORT", "9090")
				t.Setenv("BOOKSEARCH_SEARCH_DEFAULT_PAGE_SIZE", "40")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
				assert.Equal(t, 40, GetInt("search.default_page_size"))
			},
		},
		{
			name:  "missing config file with defaults",
			setup: func(t *testing.T, dir string) {},
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, 25, GetInt("search.default_page_size"))
				assert.Equal(t, 300*time.Millisecond, GetDuration("search.debounce"))
				assert.Equal(t, 5*time.Second, GetDuration("search.fetch_timeout"))
				assert.Equal(t, "https://openlibrary.org", GetString("open_library.base_url"))
				assert.Equal(t, 30*24*time.Hour, GetDuration("database.retention"))
				assert.Equal(t, time.Hour, GetDuration("database.prune_interval"))
			},
		},
		{
			name: "default page size above max is rejected",
			setup: func(t *testing.T, dir string) {
				writeSettings(t, dir, `
search:
  default_page_size: 500
`)
			},
			wantErr: true,
		},
		{
			name: "invalid port",
			setup: func(t *testing.T, dir string) {
				t.Setenv("BOOKSEARCH_SERVER_PORT", "70000")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			Reset()
			t.Cleanup(Reset)
			tt.setup(t, dir)

			err := Init()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	inTempDir(t)
	Reset()
	t.Cleanup(Reset)

	require.NoError(t, Init())
	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Search.DefaultPageSize)
	assert.Equal(t, 100, cfg.Search.MaxPageSize)
	assert.Equal(t, 16, cfg.Sessions.EventBuffer)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimiting.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Search: SearchConfig{DefaultPageSize: 25, MaxPageSize: 100},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 0},
			},
			wantErr: true,
		},
		{
			name: "negative default page size",
			config: &Config{
				Server: ServerConfig{Port: 8080},
				Search: SearchConfig{DefaultPageSize: -1},
			},
			wantErr: true,
		},
		{
			name: "zero default page size disables the default",
			config: &Config{
				Server: ServerConfig{Port: 8080},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 5*time.Second, tt.config.Search.FetchTimeout)
		})
	}
}
