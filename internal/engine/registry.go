package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/pubsub"
)

// Registry holds the live set of installed engines, keyed by version.
//
// Reads (Snapshot, Resolve, Contains) are safe from any goroutine. Sync is
// the single mutation primitive and is meant to be called by one discovery
// goroutine; it publishes one event per added or removed engine, so a sync
// that changes nothing stays silent.
type Registry struct {
	mu      sync.RWMutex
	engines []Engine
	broker  *pubsub.Broker[Engine]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		broker: pubsub.NewBroker[Engine](),
	}
}

// Snapshot returns a copy of the installed engines, sorted by version.
// Callers may hold or mutate the slice freely.
func (r *Registry) Snapshot() []Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Engine, len(r.engines))
	copy(out, r.engines)
	return out
}

// Len returns the number of installed engines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// IsEmpty reports whether no engines are installed.
func (r *Registry) IsEmpty() bool {
	return r.Len() == 0
}

// Contains reports whether some installed engine provides version v.
func (r *Registry) Contains(v Version) bool {
	_, ok := r.Resolve(v)
	return ok
}

// Resolve returns the installed engine providing version v. When duplicates
// exist (they should not), the first match wins.
func (r *Registry) Resolve(v Version) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.engines {
		if e.Version() == v {
			return e, true
		}
	}
	return Engine{}, false
}

// Newest returns the highest installed version, for defaulting new projects.
func (r *Registry) Newest() (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.engines) == 0 {
		return Engine{}, false
	}
	return r.engines[len(r.engines)-1], true
}

// Sync replaces the live set with found and publishes a CreatedEvent per
// newly installed version and a DeletedEvent per version that disappeared.
// Engines are keyed by version; if found carries duplicate versions the
// first entry wins.
func (r *Registry) Sync(found []Engine) (added, removed []Engine) {
	next := make([]Engine, 0, len(found))
	byVersion := make(map[Version]Engine, len(found))
	for _, e := range found {
		if _, dup := byVersion[e.Version()]; dup {
			continue
		}
		byVersion[e.Version()] = e
		next = append(next, e)
	}
	sort.Slice(next, func(i, j int) bool { return next[i].Version().Less(next[j].Version()) })

	r.mu.Lock()
	prev := make(map[Version]Engine, len(r.engines))
	for _, e := range r.engines {
		prev[e.Version()] = e
	}
	for _, e := range next {
		if _, ok := prev[e.Version()]; !ok {
			added = append(added, e)
		}
	}
	for _, e := range r.engines {
		if _, ok := byVersion[e.Version()]; !ok {
			removed = append(removed, e)
		}
	}
	r.engines = next
	r.mu.Unlock()

	for _, e := range added {
		log.Info(log.CatEngine, "engine installed", "version", e.Version(), "path", e.InstallPath())
		r.broker.Publish(pubsub.CreatedEvent, e)
	}
	for _, e := range removed {
		log.Info(log.CatEngine, "engine removed", "version", e.Version())
		r.broker.Publish(pubsub.DeletedEvent, e)
	}
	return added, removed
}

// Subscribe returns the add/remove notification stream. The subscription is
// dropped when ctx is cancelled.
func (r *Registry) Subscribe(ctx context.Context) <-chan pubsub.Event[Engine] {
	return r.broker.Subscribe(ctx)
}

// Close shuts down the notification stream.
func (r *Registry) Close() {
	r.broker.Close()
}
