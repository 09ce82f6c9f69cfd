package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the persistence collaborator: a key-value store addressed by
// fixed key strings, loading and saving whole serialized aggregates.
type BlobStore interface {
	// Load returns the blob for key, or found=false when no blob exists.
	Load(key string) (blob []byte, found bool, err error)
	// Save replaces the blob for key in one shot.
	Save(key string, blob []byte) error
}

// FileBlobStore keeps one JSON file per key under a directory. Saves write a
// temp file and rename it into place, so a crash mid-write leaves the old
// blob intact rather than a partial one.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrPersistence, err)
	}
	return &FileBlobStore{dir: dir}, nil
}

func (f *FileBlobStore) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(f.dir, name)
}

func (f *FileBlobStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %v", ErrPersistence, key, err)
	}
	return data, true, nil
}

func (f *FileBlobStore) Save(key string, blob []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrPersistence, key, err)
	}
	return nil
}
