package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// LocalStore keeps snapshots as files in a single directory.
type LocalStore struct {
	now func() time.Time
	dir string
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithClock replaces time.Now for snapshot names.
func WithClock(now func() time.Time) LocalOption {
	return func(s *LocalStore) {
		s.now = now
	}
}

// NewLocalStore creates a store rooted at dir. The directory is created on first save.
func NewLocalStore(dir string, opts ...LocalOption) *LocalStore {
	s := &LocalStore{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes data to dir/<name>.<timestamp>.bak and returns the file name.
func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	key := baseName(name) + "." + stamp(s.now()) + ".bak"
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o600); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return key, nil
}

// Load reads a snapshot by the key Save returned.
func (s *LocalStore) Load(_ context.Context, key string) ([]byte, error) {
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("backup: read %s: %w", key, err)
	}
	return data, nil
}

// List returns the snapshot keys of name, oldest first.
func (s *LocalStore) List(name string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("backup: list: %w", err)
	}
	prefix := baseName(name) + "."
	var keys []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".bak") {
			keys = append(keys, e.Name())
		}
	}
	slices.Sort(keys)
	return keys, nil
}

var _ Store = (*LocalStore)(nil)
