package project

import (
	"context"
	"fmt"
	"sync"

	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/pubsub"
)

// DuplicateProjectError is returned by Add when the path is already known.
type DuplicateProjectError struct {
	Path string
}

func (e DuplicateProjectError) Error() string {
	return fmt.Sprintf("project already registered: %s", e.Path)
}

// Store holds the live collection of known projects, keyed by path.
// Insertion order is preserved for display only.
//
// mu guards the collection so any number of readers see consistent
// snapshots; writeMu serializes Add/Remove/Save against each other so two
// writers can never interleave a mutation with a persistence write.
type Store struct {
	mu      sync.RWMutex
	writeMu sync.Mutex

	projects []*Project
	byPath   map[string]*Project
	source   Source
	broker   *pubsub.Broker[*Project]
}

// NewStore creates an empty store persisting through source.
func NewStore(source Source) *Store {
	return &Store{
		byPath: make(map[string]*Project),
		source: source,
		broker: pubsub.NewBroker[*Project](),
	}
}

// Load replaces the live collection with the persisted one. Called once at
// startup, before any observers subscribe.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	loaded, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}

	byPath := make(map[string]*Project, len(loaded))
	ordered := make([]*Project, 0, len(loaded))
	for _, p := range loaded {
		if _, dup := byPath[p.Path()]; dup {
			log.Warn(log.CatProject, "dropping duplicate project entry", "path", p.Path())
			continue
		}
		byPath[p.Path()] = p
		ordered = append(ordered, p)
	}

	s.mu.Lock()
	s.projects = ordered
	s.byPath = byPath
	s.mu.Unlock()

	log.Info(log.CatProject, "projects loaded", "count", len(ordered))
	return nil
}

// Add inserts a project into the live collection. It does not persist;
// the lifecycle layer follows every mutation with exactly one Save.
func (s *Store) Add(p *Project) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if _, exists := s.byPath[p.Path()]; exists {
		s.mu.Unlock()
		return DuplicateProjectError{Path: p.Path()}
	}
	s.byPath[p.Path()] = p
	s.projects = append(s.projects, p)
	s.mu.Unlock()

	s.broker.Publish(pubsub.CreatedEvent, p)
	return nil
}

// Remove deletes the project at path from the live collection and returns
// it. Removing an unknown path is a no-op, so a second removal of the same
// project cannot fail. Does not persist.
func (s *Store) Remove(path string) (*Project, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	p, exists := s.byPath[path]
	if !exists {
		s.mu.Unlock()
		return nil, false
	}
	delete(s.byPath, path)
	for i, candidate := range s.projects {
		if candidate.Path() == path {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.broker.Publish(pubsub.DeletedEvent, p)
	return p, true
}

// Get returns the live project at path.
func (s *Store) Get(path string) (*Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byPath[path]
	return p, ok
}

// Projects returns the collection in insertion order. The slice is a copy;
// the entities are live.
func (s *Store) Projects() []*Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Len returns the number of known projects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// Save persists the entire collection atomically: either the new state is
// fully written or the prior file is untouched. Reads of the collection stay
// possible while the write is in flight.
func (s *Store) Save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snapshot := s.Projects()
	if err := s.source.Persist(ctx, snapshot); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	log.Debug(log.CatProject, "projects saved", "count", len(snapshot))
	return nil
}

// Subscribe returns the store's created/deleted notification stream.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[*Project] {
	return s.broker.Subscribe(ctx)
}

// Close shuts down the notification stream.
func (s *Store) Close() {
	s.broker.Close()
}
