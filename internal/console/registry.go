package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// Registry keeps one Workspace per session identifier and evicts the
// ones left idle for longer than the idle timeout.
type Registry struct {
	client resource.Doer
	logger *slog.Logger
	idle   time.Duration
	now    func() time.Time

	mu     sync.Mutex
	spaces map[string]*entry
}

// NewRegistry constructs a Registry. A zero idle timeout disables eviction.
func NewRegistry(client resource.Doer, logger *slog.Logger, idle time.Duration) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		client: client,
		logger: logger,
		idle:   idle,
		now:    time.Now,
		spaces: make(map[string]*entry),
	}
}

// Get returns the workspace of sessionID, creating it on first use.
func (r *Registry) Get(sessionID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.spaces[sessionID]
	if !ok {
		e = &entry{ws: NewWorkspace(r.client, r.logger.With(slog.String("session", shortID(sessionID))))}
		r.spaces[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.ws
}

// Drop discards the workspace of sessionID, canceling its in-flight calls.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	e, ok := r.spaces[sessionID]
	delete(r.spaces, sessionID)
	r.mu.Unlock()
	if ok {
		e.ws.Close()
	}
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

// Sweep evicts idle workspaces and returns how many were evicted.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)
	var stale []*Workspace
	r.mu.Lock()
	for id, e := range r.spaces {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.ws)
			delete(r.spaces, id)
		}
	}
	r.mu.Unlock()
	for _, ws := range stale {
		ws.Close()
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("evicted idle workspaces", slog.Int("count", n))
			}
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
