// Package skipstore keeps the run-wide "skip remaining scenarios" signal and
// persists it between runs.
package skipstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type (
	// FileStore persists the flag as a YAML document.
	FileStore struct {
		path string
	}

	// MemoryStore keeps the flag for the lifetime of the process.
	MemoryStore struct {
		mu   sync.Mutex
		skip bool
	}

	state struct {
		Skip bool `yaml:"skip"`
	}
)

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the flag. A missing file reads as false.
func (s *FileStore) Load() (bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read skip file %s: %w", s.path, err)
	}

	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return false, fmt.Errorf("could not parse skip file %s: %w", s.path, err)
	}
	return st.Skip, nil
}

// Save writes the flag, creating parent directories as needed.
func (s *FileStore) Save(skip bool) error {
	data, err := yaml.Marshal(state{Skip: skip})
	if err != nil {
		return fmt.Errorf("could not encode skip state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create skip file directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("could not write skip file %s: %w", s.path, err)
	}
	return nil
}

// NewMemoryStore returns a store holding skip.
func NewMemoryStore(skip bool) *MemoryStore {
	return &MemoryStore{skip: skip}
}

func (s *MemoryStore) Load() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skip, nil
}

func (s *MemoryStore) Save(skip bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skip = skip
	return nil
}
