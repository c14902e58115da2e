package memory

import (
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// memoryPath is reported by Path when no path is configured.
const memoryPath = ":memory:"

// ConfigStore is an in-memory driven.ConfigStore with the same
// Set/Save/Load contract as the TOML store: Set changes a working copy,
// Save commits it and Load discards whatever was not saved.
type ConfigStore struct {
	mu      sync.RWMutex
	path    string
	values  map[string]any
	saved   map[string]any
	saves   int
	saveErr error
}

// ConfigOption configures a ConfigStore.
type ConfigOption func(*ConfigStore)

// WithValues seeds the store with values that count as already saved.
func WithValues(values map[string]any) ConfigOption {
	return func(s *ConfigStore) {
		maps.Copy(s.saved, values)
	}
}

// WithPath sets the path reported by Path.
func WithPath(path string) ConfigOption {
	return func(s *ConfigStore) {
		s.path = path
	}
}

// WithSaveError makes every Save fail with err.
func WithSaveError(err error) ConfigOption {
	return func(s *ConfigStore) {
		s.saveErr = err
	}
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore(opts ...ConfigOption) *ConfigStore {
	s := &ConfigStore{
		path:  memoryPath,
		saved: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.values = maps.Clone(s.saved)
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := s.getOK(key).(string)
	return str
}

// GetInt retrieves an integer configuration value. Whole float64 values,
// as produced by JSON decoding, are accepted.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.getOK(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return 0
}

// GetDuration retrieves a duration stored as a Go duration string or a
// time.Duration.
func (s *ConfigStore) GetDuration(key string) time.Duration {
	switch v := s.getOK(key).(type) {
	case time.Duration:
		return v
	case string:
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return 0
}

// Set stores a value in the working copy.
func (s *ConfigStore) Set(key string, value any) error {
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return fmt.Errorf("invalid config key %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save commits the working copy.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = maps.Clone(s.values)
	s.saves++
	return nil
}

// Load resets the working copy to the last saved values.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = maps.Clone(s.saved)
	return nil
}

// Path returns the configured path, ":memory:" by default.
func (s *ConfigStore) Path() string {
	return s.path
}

// Saves reports how many times Save succeeded.
func (s *ConfigStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *ConfigStore) getOK(key string) any {
	val, _ := s.Get(key)
	return val
}
