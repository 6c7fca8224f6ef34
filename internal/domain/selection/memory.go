package selection

import (
	"context"
	"slices"
	"sync"
)

// MemoryPort keeps the persisted list in process memory. It is the
// default Port and the test double for the file-backed adapter.
type MemoryPort struct {
	mu  sync.Mutex
	ids []string
}

// NewMemoryPort creates an empty in-memory port.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{}
}

// Load returns the stored ids.
func (p *MemoryPort) Load(_ context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.ids), nil
}

// Save replaces the stored ids.
func (p *MemoryPort) Save(_ context.Context, ids []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = slices.Clone(ids)
	return nil
}
