// Package cleanup prunes old search history on a schedule.
package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pruner deletes history recorded before a cutoff.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service prunes history older than maxAge every interval
type Service struct {
	pruner   Pruner
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a new cleanup service
func NewService(pruner Pruner, maxAge, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		pruner:   pruner,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs one prune immediately and then one per interval until ctx is
// cancelled or Stop is called. A non-positive maxAge keeps history forever.
func (s *Service) Start(ctx context.Context) {
	if s.maxAge <= 0 {
		logrus.Info("History retention disabled")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.RunOnce(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce(ctx)
			case <-ctx.Done():
				logrus.Debug("History cleanup stopped")
				return
			}
		}
	}()

	logrus.WithFields(logrus.Fields{
		"interval": s.interval,
		"max_age":  s.maxAge,
	}).Info("History cleanup started")
}

// Stop stops the cleanup loop and waits for it to exit
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunOnce prunes everything older than maxAge and returns the number of
// removed records.
func (s *Service) RunOnce(ctx context.Context) int64 {
	// Timestamps are stored in UTC
	cutoff := s.now().UTC().Add(-s.maxAge)
	removed, err := s.pruner.Prune(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Warn("Failed to prune search history")
		return 0
	}
	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed": removed,
			"cutoff":  cutoff.Format(time.RFC3339),
		}).Info("Pruned search history")
	}
	return removed
}
