// Package store provides the durable string key-value storage injected into
// the eligibility cache and the display reconciler.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore is a Store backed by a single JSON file that is rewritten
// atomically on every Set. A malformed file is treated as empty, never as
// a fatal error.
type FileStore struct {
	logger *zap.Logger
	mu     sync.Mutex
	path   string
}

// NewFileStore creates a file-backed store at path. The file is created
// lazily on first Set.
func NewFileStore(logger *zap.Logger, path string) *FileStore {
	return &FileStore{logger: logger, path: path}
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.read()
	v, ok := m[key]
	return v, ok, nil
}

// Set writes value under key and persists the whole mapping atomically.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.read()
	m[key] = value
	return s.write(m)
}

// read loads the current mapping. Missing or unreadable files yield an
// empty mapping.
func (s *FileStore) read() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to read state file, starting empty",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return map[string]string{}
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Warn("State file is malformed, starting empty",
			zap.String("path", s.path),
			zap.Error(err))
		return map[string]string{}
	}
	if m == nil {
		return map[string]string{}
	}
	return m
}

// write persists the mapping via a temp file and rename so readers never
// observe a partial write.
func (s *FileStore) write(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state tmp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename state tmp: %w", err)
	}
	return nil
}
