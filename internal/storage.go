package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Persisted state keys
const (
	SelectedStorageKey = "selected_products_v1"
	ChatHistoryKey     = "chat_history_v1"
)

// StateStore is key-value text storage for session state
type StateStore interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// State store drivers
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// OpenStateStore opens the state store for the given driver
func OpenStateStore(driver, path string) (StateStore, error) {
	switch driver {
	case "", DriverSQLite:
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		db, err := OpenDatabase(path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db)
	case DriverBolt:
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return OpenBoltStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported state driver: %s (supported: sqlite, bolt, memory)", driver)
	}
}

func ensureParentDir(path string) error {
	if path == "" {
		return fmt.Errorf("state path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

// MemoryStore keeps state in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// Keys returns the stored keys in sorted order
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
