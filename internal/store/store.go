// Package store persists JSON datasets under a state directory.
//
// Datasets are addressed by relative file name and round-trip through
// JSON. Writes are whole-value replace; every mutation of a derived
// collection is expected to read, modify, and rewrite the entire
// dataset. There is no transactional guarantee across datasets: the
// store assumes a single writer in a single process.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes JSON datasets rooted at Dir.
type Store struct {
	Dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Read unmarshals the named dataset into v. A missing dataset is not
// an error: Read reports found=false and leaves v untouched so the
// caller's default value stands.
func (s *Store) Read(name string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read dataset %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse dataset %s: %w", name, err)
	}
	return true, nil
}

// Write replaces the named dataset with v, serialized with 2-space
// indentation, creating parent directories as needed.
func (s *Store) Write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset %s: %w", name, err)
	}

	// Add trailing newline
	data = append(data, '\n')

	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset %s: %w", name, err)
	}
	return nil
}

// Delete removes the named dataset. Deleting an absent dataset is a no-op.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete dataset %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the named dataset is present on disk.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.path(name))
	return err == nil && !info.IsDir()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}
