package store

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. It backs tests and the
// "memory" storage driver; the data is gone when the process exits.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := encodeDoc(collection, doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.collections[collection] = docs
	}
	docs[id] = raw
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.collections[collection]
	all := make([][]byte, 0, len(docs))
	for _, raw := range docs {
		out := make([]byte, len(raw))
		copy(out, raw)
		all = append(all, out)
	}
	return all, nil
}

func (s *MemoryStore) GetWhere(ctx context.Context, collection string, filter map[string]string) ([][]byte, error) {
	all, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return filterDocs(all, filter)
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	merged, err := mergePatch(raw, patch)
	if err != nil {
		return err
	}
	if err := validateTimestamps(collection, merged); err != nil {
		return err
	}
	s.collections[collection][id] = merged
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
