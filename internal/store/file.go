package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
)

// FileStore keeps the collection in a single JSON file on disk, the local
// development stand-in for a real backend.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path. The file is created on
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// GetAll reads the collection from disk. A missing or unreadable file is
// treated as an empty collection.
func (s *FileStore) GetAll(ctx context.Context) ([]model.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []model.User{}, nil
	}
	return Decode(data), nil
}

// ReplaceAll writes the full collection, using a temp file and rename so a
// crashed write never leaves a truncated collection behind.
func (s *FileStore) ReplaceAll(ctx context.Context, users []model.User) error {
	data, err := Encode(users)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	tmp, err := os.CreateTemp(dir, ".members-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	return nil
}
