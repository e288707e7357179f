package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/book-search/internal/database"
	"github.com/killallgit/book-search/internal/services/history"
	"github.com/killallgit/book-search/internal/services/openlibrary"
	"github.com/killallgit/book-search/internal/services/search"
	"github.com/killallgit/book-search/pkg/config"
)

// openHistory opens and migrates the history database. An empty path
// disables history and returns nil.
func openHistory(cfg *config.Config) (*database.DB, history.Repository, error) {
	if cfg.Database.Path == "" {
		logrus.Info("Search history disabled")
		return nil, nil, nil
	}

	db, err := database.Open(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return db, history.NewRepository(db.DB), nil
}

// newSearchService wires the Open Library client into the fetch policy.
func newSearchService(cfg *config.Config, repo history.Repository) *search.Service {
	client := openlibrary.NewClient(openlibrary.Config{
		BaseURL:           cfg.OpenLibrary.BaseURL,
		UserAgent:         cfg.OpenLibrary.UserAgent,
		RequestsPerMinute: cfg.OpenLibrary.RateLimit,
		BurstSize:         cfg.OpenLibrary.Burst,
	})

	opts := []search.Option{search.WithTimeout(cfg.Search.FetchTimeout)}
	if repo != nil {
		opts = append(opts, search.WithHistory(repo))
	}
	return search.NewService(client, opts...)
}
