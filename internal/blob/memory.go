package blob

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/claimload/pkg/claimload"
)

// MemoryStore is an in-memory Store implementation for tests.
//
// Thread-Safety: Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores an object under container/name.
func (s *MemoryStore) Put(container, name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[container+"/"+name] = data
}

// Get returns a copy of the stored object, or claimload.ErrObjectNotFound.
func (s *MemoryStore) Get(_ context.Context, container, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[container+"/"+name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", container, name, claimload.ErrObjectNotFound)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Verify MemoryStore implements Store at compile time
var _ Store = (*MemoryStore)(nil)
