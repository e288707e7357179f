// Package sessions keeps one search state and results pipeline per client.
package sessions

import (
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/killallgit/book-search/internal/metrics"
	"github.com/killallgit/book-search/internal/services/search"
	"github.com/killallgit/book-search/pkg/errors"
)

// Config holds configuration for the session manager
type Config struct {
	DefaultPageSize int           // Page size published before any URL state; 0 disables
	Debounce        time.Duration // Default: 300ms
	IdleTimeout     time.Duration // Default: 30m
	CleanupInterval time.Duration // Default: 5m
	EventBuffer     int           // Default: 16
}

// Manager creates, finds and expires sessions.
type Manager struct {
	cfg      Config
	fetcher  Fetcher
	sessions sync.Map

	cleanupStop chan struct{}
	cleanupOnce sync.Once
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewManager creates a manager and starts its idle cleanup loop.
func NewManager(cfg Config, fetcher Fetcher) *Manager {
	if cfg.Debounce <= 0 {
		cfg.Debounce = search.DefaultDebounce
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 16
	}

	m := &Manager{
		cfg:         cfg,
		fetcher:     fetcher,
		cleanupStop: make(chan struct{}),
	}
	m.cleanupOnce.Do(func() {
		m.wg.Add(1)
		go m.cleanupIdleSessions()
	})
	return m
}

// Create opens a session seeded from the configured default page size and
// the query-string state in q.
func (m *Manager) Create(q url.Values) *Session {
	id := uuid.NewString()
	s := newSession(id, q, m.cfg.DefaultPageSize, m.cfg.Debounce, m.cfg.EventBuffer, m.fetcher)
	m.sessions.Store(id, s)
	metrics.ActiveSessions.Inc()

	logrus.WithFields(logrus.Fields{
		"session_id": id,
		"query":      q.Encode(),
	}).Debug("Session created")
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	v, ok := m.sessions.Load(id)
	if !ok {
		return nil, errors.NotFound("session", id)
	}
	s := v.(*Session)
	s.touch()
	return s, nil
}

// Close closes and forgets the session with id.
func (m *Manager) Close(id string) error {
	v, ok := m.sessions.LoadAndDelete(id)
	if !ok {
		return errors.NotFound("session", id)
	}
	v.(*Session).Close()
	metrics.ActiveSessions.Dec()

	logrus.WithField("session_id", id).Debug("Session closed")
	return nil
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Shutdown stops the cleanup loop and closes every session.
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() {
		close(m.cleanupStop)
	})
	m.wg.Wait()

	m.sessions.Range(func(key, _ any) bool {
		_ = m.Close(key.(string))
		return true
	})
}

func (m *Manager) cleanupIdleSessions() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expire(time.Now())
		case <-m.cleanupStop:
			return
		}
	}
}

// expire closes sessions idle for longer than the idle timeout. Sessions
// with an attached listener are kept.
func (m *Manager) expire(now time.Time) int {
	expired := 0
	m.sessions.Range(func(key, value any) bool {
		s := value.(*Session)
		if s.Listeners() > 0 || now.Sub(s.LastSeen()) <= m.cfg.IdleTimeout {
			return true
		}
		if err := m.Close(key.(string)); err == nil {
			expired++
		}
		return true
	})

	if expired > 0 {
		logrus.WithField("expired", expired).Info("Expired idle sessions")
	}
	return expired
}
