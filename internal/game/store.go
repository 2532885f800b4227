package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Persisted flag keys.
const (
	KeySquareCount        = "squareCount"
	KeyRoundDurationLabel = "roundDurationLabel"
	KeyDartsTarget        = "dartsTargetScore"
)

// Store is a string-valued key-value store that outlives UI re-injection.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemStore is an in-memory Store.
type MemStore struct {
	values map[string]string
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) {
	s.values[key] = value
}

func (s *MemStore) Remove(key string) {
	delete(s.values, key)
}

// Keys returns the stored keys in sorted order.
func (s *MemStore) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileStore is a Store backed by a JSON object on disk. Every mutation is
// written through; a failed write keeps the in-memory value and is reported
// by Err.
type FileStore struct {
	path string
	mem  *MemStore
	err  error
}

// DefaultStorePath returns the store location under the user config dir.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "grid-mode", "flags.json"), nil
}

// OpenFileStore loads the store at path. A missing file is an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, mem: NewMemStore()}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.mem.values); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	if fs.mem.values == nil {
		fs.mem.values = make(map[string]string)
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, bool) {
	return fs.mem.Get(key)
}

func (fs *FileStore) Set(key, value string) {
	fs.mem.Set(key, value)
	fs.err = fs.save()
}

func (fs *FileStore) Remove(key string) {
	if _, ok := fs.mem.Get(key); !ok {
		return
	}
	fs.mem.Remove(key)
	fs.err = fs.save()
}

// Err returns the error from the most recent write, if any.
func (fs *FileStore) Err() error {
	return fs.err
}

// Path returns the backing file path.
func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.mem.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
