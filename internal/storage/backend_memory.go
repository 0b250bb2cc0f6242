package storage

import (
	"sort"
	"sync"
)

// MemoryBackend keeps values in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (backend *MemoryBackend) Load(key string) (string, bool, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	value, ok := backend.values[key]
	return value, ok, nil
}

func (backend *MemoryBackend) Save(key, value string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.values[key] = value
	return nil
}

func (backend *MemoryBackend) Delete(key string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	delete(backend.values, key)
	return nil
}

func (backend *MemoryBackend) Keys() ([]string, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	keys := make([]string, 0, len(backend.values))
	for key := range backend.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
