package engine

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Store holds the engine currently serving requests. Swapping in a new engine
// never disturbs callers already holding the old one.
type Store struct {
	current atomic.Pointer[Engine]
}

// NewStore returns a store serving e.
func NewStore(e *Engine) *Store {
	s := &Store{}
	s.current.Store(e)
	return s
}

// Engine returns the current engine.
func (s *Store) Engine() *Engine { return s.current.Load() }

// Swap installs e and returns the engine it replaced.
func (s *Store) Swap(e *Engine) *Engine { return s.current.Swap(e) }

// Reloader rebuilds the engine on a cron schedule. A failed reload keeps the
// previous engine in place.
type Reloader struct {
	store *Store
	load  func() (*Engine, error)
	cron  *cron.Cron
}

// NewReloader validates schedule (standard 5-field cron or a descriptor such
// as "@every 1h") and registers the reload job. Call Start to begin.
func NewReloader(store *Store, schedule string, load func() (*Engine, error)) (*Reloader, error) {
	r := &Reloader{
		store: store,
		load:  load,
		cron:  cron.New(),
	}
	if _, err := r.cron.AddFunc(schedule, func() { _ = r.Reload() }); err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Reloader) Start() { r.cron.Start() }

// Stop halts the scheduler and waits for a running reload to finish.
func (r *Reloader) Stop() { <-r.cron.Stop().Done() }

// Reload builds a fresh engine and swaps it in.
func (r *Reloader) Reload() error {
	e, err := r.load()
	if err != nil {
		log.Printf("Reloader: keeping current engine, reload failed: %v", err)
		return err
	}
	old := r.store.Swap(e)
	if old != nil {
		log.Printf("Reloader: engine %s replaced by %s", old.ID(), e.ID())
	}
	return nil
}
