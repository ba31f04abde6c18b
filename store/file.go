package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZaguanLabs/furigo"
)

// FileFormat is the JSON document written by FileStore.
type FileFormat struct {
	Version   string                `json:"version"`
	UpdatedAt string                `json:"updated_at"`
	Settings  furigo.UserPreference `json:"settings"`
}

// FileStore persists the preference as a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns the preference file location under the user's config directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, furigo.Name, "preferences.json"), nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// LoadPreference reads the preference file. A missing file yields the default.
func (s *FileStore) LoadPreference(ctx context.Context) (furigo.UserPreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path) // #nosec G304 - path comes from configuration
	if errors.Is(err, os.ErrNotExist) {
		return furigo.DefaultPreference(), nil
	}
	if err != nil {
		return furigo.DefaultPreference(), &furigo.StoreError{Message: "reading preference file", Cause: err}
	}

	var doc FileFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return furigo.DefaultPreference(), &furigo.StoreError{Message: "decoding preference file", Cause: err}
	}

	return doc.Settings, nil
}

// SavePreference writes the preference file atomically.
func (s *FileStore) SavePreference(ctx context.Context, pref furigo.UserPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := FileFormat{
		Version:   "1.0",
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  pref,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &furigo.StoreError{Message: "encoding preference file", Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return &furigo.StoreError{Message: "creating preference directory", Cause: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".preferences-*.json")
	if err != nil {
		return &furigo.StoreError{Message: "creating temporary file", Cause: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return &furigo.StoreError{Message: "writing preference file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &furigo.StoreError{Message: "writing preference file", Cause: err}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &furigo.StoreError{Message: "replacing preference file", Cause: err}
	}
	return nil
}

// Verify FileStore implements PreferenceStore
var _ PreferenceStore = (*FileStore)(nil)
