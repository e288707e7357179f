package sessions

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/search"
	"github.com/killallgit/book-search/internal/services/searchstate"
	"github.com/killallgit/book-search/pkg/logging"
)

// Event types pushed to session listeners.
const (
	EventState   = "state"
	EventResults = "results"
	EventAlert   = "alert"
)

// Event is one message for a session listener.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StatePayload carries the search state and its query-string form.
type StatePayload struct {
	Search *models.CurrentSearch `json:"search"`
	Query  string                `json:"query"`
}

// ResultsPayload carries one fetched page.
type ResultsPayload struct {
	Search    models.CurrentSearch `json:"search"`
	Result    models.SearchResult  `json:"result"`
	Paginator models.Paginator     `json:"paginator"`
}

// AlertPayload carries a message the user has to acknowledge.
type AlertPayload struct {
	Message string `json:"message"`
}

// Fetcher runs one search under the fetch policy.
type Fetcher interface {
	Fetch(ctx context.Context, search models.CurrentSearch, n search.Notifier) models.SearchResult
}

// Session owns the state holder and results pipeline of one client.
type Session struct {
	ID        string
	CreatedAt time.Time

	holder   *searchstate.Holder
	lastSeen atomic.Int64
	buffer   int

	mu        sync.Mutex
	listeners map[uint64]chan Event
	nextID    uint64
	latest    *search.Outcome
	closed    bool

	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(id string, q url.Values, defaultPageSize int, debounce time.Duration, buffer int, fetcher Fetcher) *Session {
	if buffer < 1 {
		buffer = 1
	}

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		buffer:    buffer,
		listeners: make(map[uint64]chan Event),
		done:      make(chan struct{}),
	}
	s.touch()

	s.holder = searchstate.NewHolder(searchstate.WithMirror(func(v url.Values) {
		s.publish(Event{Type: EventState, Data: StatePayload{Search: s.holder.Value(), Query: v.Encode()}})
	}))
	s.holder.Init(defaultPageSize, q)

	ctx, cancel := context.WithCancel(logging.ContextWithID(context.Background(), id))
	s.cancel = cancel

	updates, unsubscribe := s.holder.Subscribe()
	notifier := search.NotifierFunc(func(ctx context.Context, message string) {
		s.publish(Event{Type: EventAlert, Data: AlertPayload{Message: message}})
	})
	outcomes := search.Results(ctx, updates, debounce, func(ctx context.Context, cs models.CurrentSearch) models.SearchResult {
		return fetcher.Fetch(ctx, cs, notifier)
	})

	go func() {
		defer close(s.done)
		defer unsubscribe()

		for o := range outcomes {
			o := o
			s.mu.Lock()
			s.latest = &o
			s.mu.Unlock()

			s.publish(Event{Type: EventResults, Data: ResultsPayload{
				Search:    o.Search,
				Result:    o.Result,
				Paginator: models.NewPaginator(o.Search, o.Result),
			}})
		}
	}()

	return s
}

// Holder returns the session's state holder.
func (s *Session) Holder() *searchstate.Holder {
	s.touch()
	return s.holder
}

// State returns the current search and its query-string form.
func (s *Session) State() StatePayload {
	current := s.holder.Value()
	payload := StatePayload{Search: current}
	if current != nil {
		payload.Query = searchstate.Encode(*current).Encode()
	}
	return payload
}

// Latest returns the last delivered outcome, if any.
func (s *Session) Latest() (search.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return search.Outcome{}, false
	}
	return *s.latest, true
}

// Subscribe registers a listener. The channel starts with the current state
// and the latest results, and is closed by cancel or when the session closes.
// Events for a listener whose buffer is full are dropped.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.touch()

	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, s.buffer+2)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.listeners[id] = ch

	ch <- Event{Type: EventState, Data: s.State()}
	if s.latest != nil {
		o := *s.latest
		ch <- Event{Type: EventResults, Data: ResultsPayload{
			Search:    o.Search,
			Result:    o.Result,
			Paginator: models.NewPaginator(o.Search, o.Result),
		}}
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if l, ok := s.listeners[id]; ok {
				delete(s.listeners, id)
				close(l)
			}
		})
	}
}

// Listeners returns the number of attached listeners.
func (s *Session) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// LastSeen is the last time the session was used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	for id, ch := range s.listeners {
		select {
		case ch <- ev:
		default:
			logrus.WithFields(logrus.Fields{
				"session_id":  s.ID,
				"listener_id": id,
				"event":       ev.Type,
			}).Warn("Dropping event for slow listener")
		}
	}
}

// Close stops the pipeline and closes every listener. It waits for the
// pipeline goroutine to finish.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	for id, ch := range s.listeners {
		delete(s.listeners, id)
		close(ch)
	}
	s.mu.Unlock()

	s.cancel()
	s.holder.Close()
	<-s.done
}
