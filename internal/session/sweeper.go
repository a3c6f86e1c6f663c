package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically expires idle workspaces.
type Sweeper struct {
	cron  *cron.Cron
	store *Store
	log   *slog.Logger
}

// NewSweeper creates a Sweeper that runs Store.Sweep every interval.
func NewSweeper(store *Store, interval time.Duration, log *slog.Logger) (*Sweeper, error) {
	c := cron.New()

	s := &Sweeper{
		cron:  c,
		store: store,
		log:   log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.run); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled sweeps.
func (s *Sweeper) Start() {
	s.log.Info("session sweeper started")
	s.cron.Start()
}

// Stop stops the sweeper, waiting for a running sweep to finish.
func (s *Sweeper) Stop() context.Context {
	s.log.Info("session sweeper stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Sweeper) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Sweeper) run() {
	if n := s.store.Sweep(); n > 0 {
		s.log.Info("expired idle sessions", "count", n, "remaining", s.store.Len())
	}
}
