package store

import (
	"context"
	"sync"

	"github.com/shoply/cartd/internal/cart"
)

// memoryStore implements CartStore using an in-memory key-value map. It keeps
// serialized values so it behaves like the durable store, round-trip included.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates a new in-memory CartStore.
func NewMemoryStore() CartStore {
	return &memoryStore{
		values: make(map[string][]byte),
	}
}

func (s *memoryStore) Load(_ context.Context) ([]cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.values[cartKey]
	if !ok {
		return nil, nil
	}
	return decodeItems(data)
}

func (s *memoryStore) Save(_ context.Context, items []cart.Item) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[cartKey] = data
	return nil
}
