package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/abhisek/flashquiz/internal/session"
)

// Registry holds one state machine per HTTP client session. Each machine
// is guarded by its own mutex so that sessions never block each other.
// Sessions a client abandons stay until Sweep (or RunSweeper) expires them.
type Registry struct {
	newMachine func() *session.Machine
	clock      clock.WithTicker

	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	m        *session.Machine
	lastUsed atomic.Int64 // unix nanoseconds
}

// NewRegistry returns an empty registry that builds machines with newMachine.
func NewRegistry(newMachine func() *session.Machine) *Registry {
	if newMachine == nil {
		newMachine = func() *session.Machine { return session.New(session.Options{}) }
	}
	return &Registry{
		newMachine: newMachine,
		clock:      clock.RealClock{},
		sessions:   make(map[string]*entry),
	}
}

// WithClock sets the clock used to track idle sessions.
func (r *Registry) WithClock(c clock.WithTicker) *Registry {
	if c != nil {
		r.clock = c
	}
	return r
}

// Create registers a fresh idle machine and returns its id.
func (r *Registry) Create() string {
	e := &entry{m: r.newMachine()}
	e.touch(r.clock.Now())
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = e
	r.mu.Unlock()
	return id
}

// get returns the entry for id or session.ErrNoSession.
func (r *Registry) get(id string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, session.ErrNoSession
	}
	e.touch(r.clock.Now())
	return e, nil
}

// Delete removes the session and resets its machine so observers see the
// session end.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return session.ErrNoSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.Reset()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep resets and drops sessions nobody has touched for maxIdle. It
// returns how many were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.clock.Now().Add(-maxIdle).UnixNano()

	var stale []*entry
	r.mu.Lock()
	for id, e := range r.sessions {
		if e.lastUsed.Load() < cutoff {
			stale = append(stale, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, e := range stale {
		e.mu.Lock()
		e.m.Reset()
		e.mu.Unlock()
	}
	return len(stale)
}

// RunSweeper calls Sweep every maxIdle/2 until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, maxIdle time.Duration, logger *slog.Logger) error {
	t := r.clock.NewTicker(maxIdle / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C():
			if n := r.Sweep(maxIdle); n > 0 {
				logger.Info("expired idle sessions", "count", n, "live", r.Len())
			}
		}
	}
}

// Close resets and drops every session.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.sessions {
		e.mu.Lock()
		e.m.Reset()
		e.mu.Unlock()
		delete(r.sessions, id)
	}
	return nil
}

// dispatch applies ev under the entry's lock.
func (e *entry) dispatch(ev session.Event) (session.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.Dispatch(ev)
}

func (e *entry) touch(now time.Time) { e.lastUsed.Store(now.UnixNano()) }

func (e *entry) snapshot() session.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.Snapshot()
}
