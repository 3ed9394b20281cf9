package storage

import "sort"

// MemoryStore is an in-memory Store used by tests and by the read-only
// preview mode.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.Get.
func (s *MemoryStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set implements Store.Set.
func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

// Remove implements Store.Remove.
func (s *MemoryStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}

// Keys implements Store.Keys, sorted for deterministic iteration.
func (s *MemoryStore) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
