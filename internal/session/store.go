package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/donaldgifford/network-link-manager/internal/metrics"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Eviction reasons, used as metric labels.
const (
	reasonCapacity = "capacity"
	reasonIdle     = "idle"
	reasonDeleted  = "deleted"
)

// Store is a bounded set of workspaces keyed by session id. The least
// recently used workspace is evicted when capacity is reached, and
// workspaces idle for longer than the TTL expire.
type Store struct {
	mu     sync.Mutex
	cache  *lru.Cache[string, *Workspace]
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
	reason string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a Store holding at most capacity workspaces.
func NewStore(capacity int, ttl time.Duration, opts ...StoreOption) (*Store, error) {
	s := &Store{
		ttl:    ttl,
		now:    time.Now,
		log:    slog.Default(),
		reason: reasonCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.NewWithEvict(capacity, s.onEvict)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// onEvict runs inside cache calls made while s.mu is held.
func (s *Store) onEvict(id string, w *Workspace) {
	w.ClearReference()
	metrics.SessionsEvictedTotal.WithLabelValues(s.reason).Inc()
	s.log.Debug("session evicted", "session", id, "reason", s.reason)
}

// Create starts a new empty workspace.
func (s *Store) Create() *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := NewWorkspace(uuid.NewString(), s.now())
	s.reason = reasonCapacity
	s.cache.Add(w.ID(), w)
	metrics.SessionsActive.Set(float64(s.cache.Len()))
	return w
}

// Get returns the workspace for id and marks it used. Expired workspaces
// are removed and reported as ErrNotFound.
func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if s.expired(w, now) {
		s.remove(id, reasonIdle)
		return nil, ErrNotFound
	}

	w.Touch(now)
	return w, nil
}

// Delete removes a workspace. It reports whether the id existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(id, reasonDeleted)
}

// Sweep removes every expired workspace and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for _, id := range s.cache.Keys() {
		w, ok := s.cache.Peek(id)
		if ok && s.expired(w, now) && s.remove(id, reasonIdle) {
			removed++
		}
	}
	return removed
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) expired(w *Workspace, now time.Time) bool {
	return s.ttl > 0 && now.Sub(w.LastUsed()) > s.ttl
}

func (s *Store) remove(id, reason string) bool {
	s.reason = reason
	ok := s.cache.Remove(id)
	s.reason = reasonCapacity
	metrics.SessionsActive.Set(float64(s.cache.Len()))
	return ok
}
