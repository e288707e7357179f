// Package searchstate holds the latest search of a session and publishes
// every replacement to its subscribers.
package searchstate

import (
	"net/url"
	"sync"

	"github.com/killallgit/book-search/internal/models"
)

// Mirror receives the address-bar state after every submitted search.
type Mirror func(url.Values)

// Holder is a publish-subscribe cell over the latest *models.CurrentSearch.
// New subscribers first receive the current value, which may be nil.
type Holder struct {
	mu     sync.Mutex
	value  *models.CurrentSearch
	subs   map[uint64]chan *models.CurrentSearch
	nextID uint64
	mirror Mirror
	closed bool
}

// Option configures a Holder
type Option func(*Holder)

// WithMirror sets the callback that receives the query-string state on Submit.
func WithMirror(m Mirror) Option {
	return func(h *Holder) {
		h.mirror = m
	}
}

// NewHolder creates an empty holder.
func NewHolder(opts ...Option) *Holder {
	h := &Holder{
		subs: make(map[uint64]chan *models.CurrentSearch),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Value returns a copy of the current search, or nil before the first one.
func (h *Holder) Value() *models.CurrentSearch {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.value)
}

// SearchText returns the current text, or "" when there is no search.
func (h *Holder) SearchText() string {
	if v := h.Value(); v != nil {
		return v.SearchText
	}
	return ""
}

// PageSize returns the current page size, or 0 when there is no search.
func (h *Holder) PageSize() int {
	if v := h.Value(); v != nil {
		return v.PageSize
	}
	return 0
}

// Set replaces the value and notifies subscribers without touching the
// address bar.
func (h *Holder) Set(search *models.CurrentSearch) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.value = clone(search)
	for _, ch := range h.subs {
		offer(ch, clone(h.value))
	}
}

// Submit replaces the value wholesale, notifies subscribers and mirrors the
// new state into the query string.
func (h *Holder) Submit(search models.CurrentSearch) {
	h.Set(&search)

	h.mu.Lock()
	mirror, closed := h.mirror, h.closed
	h.mu.Unlock()

	if mirror != nil && !closed {
		mirror(Encode(search))
	}
}

// Subscribe returns a channel that yields the current value followed by
// every replacement. Values a slow reader has not picked up are replaced by
// newer ones. The channel is closed by cancel or Close.
func (h *Holder) Subscribe() (<-chan *models.CurrentSearch, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *models.CurrentSearch, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	ch <- clone(h.value)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Close closes every subscription; later updates are ignored.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// offer delivers v, replacing an unread older value. Callers hold h.mu, so
// there is a single sender per channel at any time.
func offer(ch chan *models.CurrentSearch, v *models.CurrentSearch) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}

func clone(s *models.CurrentSearch) *models.CurrentSearch {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
