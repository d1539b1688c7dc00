package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SeenStore persists a tracker snapshot between runs.
type SeenStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// FileStore keeps the snapshot as JSON in the config directory.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to notifications.json under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "notifications.json")}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is an empty snapshot.
func (s *FileStore) Load(_ context.Context) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read notification state: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse notification state: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot, creating the directory when needed.
func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notification state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write notification state: %w", err)
	}
	return nil
}
