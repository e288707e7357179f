// Package search turns a stream of search states into fetched results.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/book-search/internal/metrics"
	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/pipeline"
	"github.com/killallgit/book-search/pkg/logging"
)

// DefaultFetchTimeout bounds every fetch.
const DefaultFetchTimeout = 5000 * time.Millisecond

// DefaultDebounce is the quiet period before a search state is fetched.
const DefaultDebounce = 300 * time.Millisecond

// Searcher performs one remote search.
type Searcher interface {
	Search(ctx context.Context, search models.CurrentSearch) (*models.SearchResult, error)
}

// Recorder stores completed fetches.
type Recorder interface {
	Record(ctx context.Context, record *models.SearchRecord) error
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// Outcome pairs a search with the result shown for it.
type Outcome struct {
	Search models.CurrentSearch `json:"search"`
	Result models.SearchResult  `json:"result"`
}

// Service applies the fetch policy: a fixed timeout, a single attempt, and an
// empty result in place of any failure.
type Service struct {
	searcher Searcher
	history  Recorder
	timeout  time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithHistory records every completed fetch in r.
func WithHistory(r Recorder) Option {
	return func(s *Service) {
		s.history = r
	}
}

// WithTimeout overrides DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a fetch service backed by searcher.
func NewService(searcher Searcher, opts ...Option) *Service {
	s := &Service{
		searcher: searcher,
		timeout:  DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeout returns the per-fetch time limit.
func (s *Service) Timeout() time.Duration {
	return s.timeout
}

// Fetch runs one search and never fails: errors and timeouts are logged,
// reported through n and replaced by models.EmptyResult. A fetch whose ctx
// is cancelled by the caller is dropped silently.
func (s *Service) Fetch(ctx context.Context, search models.CurrentSearch, n Notifier) models.SearchResult {
	result, err := s.fetch(ctx, search)
	if err == nil {
		return result
	}

	if ctx.Err() != nil {
		return models.EmptyResult()
	}

	logging.For(ctx).WithFields(logrus.Fields{
		"search_text": search.SearchText,
		"page":        search.Page,
		"page_size":   search.PageSize,
	}).WithError(err).Error("Search request failed")

	if n != nil {
		n.Notify(ctx, "HTTP error: "+err.Error())
	}
	return models.EmptyResult()
}

func (s *Service) fetch(ctx context.Context, search models.CurrentSearch) (models.SearchResult, error) {
	start := time.Now()
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.searcher.Search(fetchCtx, search)
	took := time.Since(start)

	switch {
	case err == nil:
		metrics.ObserveFetch(metrics.OutcomeOK, took)
	case ctx.Err() != nil:
		metrics.ObserveFetch(metrics.OutcomeCancelled, took)
		logging.For(ctx).WithField("search_text", search.SearchText).Debug("Search superseded")
		return models.SearchResult{}, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded):
		metrics.ObserveFetch(metrics.OutcomeTimeout, took)
		err = fmt.Errorf("timeout has occurred after %dms: %w", s.timeout.Milliseconds(), err)
	default:
		metrics.ObserveFetch(metrics.OutcomeError, took)
	}

	var result models.SearchResult
	if err == nil {
		result = *res
		if result.Docs == nil {
			result.Docs = []models.Doc{}
		}
	}
	s.record(ctx, search, result, err, took)
	return result, err
}

func (s *Service) record(ctx context.Context, search models.CurrentSearch, result models.SearchResult, err error, took time.Duration) {
	if s.history == nil {
		return
	}

	rec := &models.SearchRecord{
		SearchText: strings.TrimSpace(search.SearchText),
		PageSize:   search.PageSize,
		Page:       search.Page,
		NumFound:   result.NumFound,
		DurationMs: took.Milliseconds(),
	}
	if err != nil {
		rec.Failed = true
		rec.Error = err.Error()
	}

	// Recording must not be cut short by the fetch deadline.
	if recErr := s.history.Record(context.WithoutCancel(ctx), rec); recErr != nil {
		logging.For(ctx).WithError(recErr).Warn("Failed to record search history")
	}
}

// Results feeds updates through the debounce, distinct, blank filter and
// switch-latest stages and fetches each surviving search. The returned
// channel closes when ctx is cancelled or updates is closed and drained.
func Results(ctx context.Context, updates <-chan *models.CurrentSearch, debounce time.Duration, fetch func(context.Context, models.CurrentSearch) models.SearchResult) <-chan Outcome {
	settled := pipeline.Debounce(ctx, updates, debounce)
	distinct := pipeline.DistinctUntilChanged(ctx, settled, models.SameSearch)
	present := pipeline.Filter(ctx, distinct, func(s *models.CurrentSearch) bool {
		return s != nil && strings.TrimSpace(s.SearchText) != ""
	})

	return pipeline.SwitchMap(ctx, present, func(ctx context.Context, s *models.CurrentSearch) Outcome {
		return Outcome{Search: *s, Result: fetch(ctx, *s)}
	})
}
