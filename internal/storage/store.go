package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
)

// ErrQuotaExceeded indicates a write would grow the store past its quota.
var ErrQuotaExceeded = errors.New("preference store quota exceeded")

// Backend persists raw string values under unique keys.
type Backend interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}

// Store is a typed key-value layer over a Backend. Reads never fail: absent,
// unreadable or malformed values fall back to the caller's default.
//
// Store does no locking across processes. Two processes writing the same key
// race and the last writer wins.
type Store struct {
	backend Backend
	logger  *log.Logger
}

// NewStore wraps backend. A nil logger logs through log.Default().
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Backend returns the underlying backend.
func (store *Store) Backend() Backend {
	return store.backend
}

// Raw returns the stored string for key.
func (store *Store) Raw(key string) (string, bool) {
	value, ok, err := store.backend.Load(key)
	if err != nil {
		store.logger.Printf("read preference %q: %v", key, err)
		return "", false
	}
	return value, ok
}

// GetString returns the stored string or fallback when absent.
func (store *Store) GetString(key, fallback string) string {
	value, ok := store.Raw(key)
	if !ok {
		return fallback
	}
	return value
}

// SetString stores value verbatim.
func (store *Store) SetString(key, value string) error {
	if err := store.backend.Save(key, value); err != nil {
		return fmt.Errorf("write preference %q: %w", key, err)
	}
	return nil
}

// GetBool reads a stringified boolean.
func (store *Store) GetBool(key string, fallback bool) bool {
	value, ok := store.Raw(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		store.logger.Printf("parse preference %q: %v", key, err)
		return fallback
	}
	return parsed
}

// SetBool stores value as "true" or "false".
func (store *Store) SetBool(key string, value bool) error {
	return store.SetString(key, strconv.FormatBool(value))
}

// Remove deletes key. Removing an absent key is not an error.
func (store *Store) Remove(key string) error {
	if err := store.backend.Delete(key); err != nil {
		return fmt.Errorf("remove preference %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys.
func (store *Store) Keys() ([]string, error) {
	keys, err := store.backend.Keys()
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return keys, nil
}

// Get decodes the JSON value stored under key into a T. It returns fallback
// when the key is absent or the value does not decode.
func Get[T any](store *Store, key string, fallback T) T {
	raw, ok := store.Raw(key)
	if !ok || raw == "" {
		return fallback
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		store.logger.Printf("decode preference %q: %v", key, err)
		return fallback
	}
	return value
}

// Decode unmarshals the JSON value under key into target, which should be
// pre-populated with defaults. Fields missing from the stored value keep
// their defaults. It reports whether a stored value was applied.
func Decode(store *Store, key string, target any) bool {
	raw, ok := store.Raw(key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		store.logger.Printf("decode preference %q: %v", key, err)
		return false
	}
	return true
}

// Set encodes value as JSON and writes it under key.
func Set(store *Store, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode preference %q: %w", key, err)
	}
	return store.SetString(key, string(encoded))
}
