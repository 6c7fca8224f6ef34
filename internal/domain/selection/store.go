// Package selection tracks the set of drills the coach has marked for
// today's session. The set survives reloads through a pluggable
// persistence Port so the core stays storage-agnostic.
package selection

import (
	"context"
	"sync"
)

// Port abstracts the durable backing store for the selection set. The
// persisted representation is an order-independent list of drill ids.
type Port interface {
	// Load returns the persisted ids. Implementations must map a
	// missing or corrupt persisted value to an empty list, not an
	// error the caller has to handle.
	Load(ctx context.Context) ([]string, error)
	// Save replaces the persisted ids with the given list.
	Save(ctx context.Context, ids []string) error
}

// Store is the in-memory selection set backed by a Port. Every
// mutation synchronously persists the full set.
type Store struct {
	mu   sync.RWMutex
	ids  map[string]struct{}
	port Port
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithPort sets the persistence port. Defaults to an in-memory port.
func WithPort(p Port) Option {
	return func(s *Store) {
		if p != nil {
			s.port = p
		}
	}
}

// New creates a Store and loads the persisted set. A load failure is
// never fatal: the store starts empty.
func New(ctx context.Context, opts ...Option) *Store {
	s := &Store{
		ids:  make(map[string]struct{}),
		port: NewMemoryPort(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if ids, err := s.port.Load(ctx); err == nil {
		for _, id := range ids {
			if id != "" {
				s.ids[id] = struct{}{}
			}
		}
	}
	return s
}

// Toggle adds id if absent and removes it if present, then persists.
// Two identical toggles cancel out. Returns the new membership state.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		s.persistLocked(ctx)
		return false
	}
	s.ids[id] = struct{}{}
	s.persistLocked(ctx)
	return true
}

// Clear empties the set and persists the empty list.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	s.persistLocked(ctx)
}

// IsSelected reports membership of id.
func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected drills.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the selected ids in unspecified order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// persistLocked writes the current set through the port. Persistence
// failures are swallowed: losing durability must not break the running
// session.
func (s *Store) persistLocked(ctx context.Context) {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	_ = s.port.Save(ctx, ids)
}
