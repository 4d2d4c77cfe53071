// Package session owns the authenticated session: token storage, presence
// checks, and clearing on logout. It performs no network calls.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is opaque string key-value storage backing a session. Implementations
// must tolerate reads of keys that were never set.
type Store interface {
	// Get returns the stored value and whether the key is present.
	Get(key string) (string, bool)
	// Set writes or overwrites a value.
	Set(key, value string) error
	// Remove deletes a key; removing an absent key is not an error.
	Remove(key string) error
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu sync.Mutex
	kv map[string]string
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{kv: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kv, key)
	return nil
}

// FileStore persists keys as a single JSON object so the CLI session survives
// process restarts. The file lives in the user config dir and is written with
// owner-only permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
	kv   map[string]string
}

var _ Store = (*FileStore)(nil)

// CfgDir resolves the client config directory, honoring XDG_CONFIG_HOME.
func CfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "overflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "overflow")
}

// OpenFileStore loads (or lazily creates) the session file at path.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, kv: make(map[string]string)}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(b, &s.kv); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return s.persist()
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kv, key)
	return s.persist()
}

func (s *FileStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	b, err := json.MarshalIndent(s.kv, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
