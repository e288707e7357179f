package types

import (
	"github.com/killallgit/book-search/internal/database"
	"github.com/killallgit/book-search/internal/services/history"
	"github.com/killallgit/book-search/internal/services/sessions"
	"github.com/killallgit/book-search/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Config   *config.Config
	DB       *database.DB
	Fetcher  sessions.Fetcher
	Sessions *sessions.Manager
	History  history.Repository
}

// DefaultPageSize returns the configured page size for new searches.
func (d *Dependencies) DefaultPageSize() int {
	if d == nil || d.Config == nil {
		return 0
	}
	return d.Config.Search.DefaultPageSize
}
