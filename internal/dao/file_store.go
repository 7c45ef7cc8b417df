package dao

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one <kind>.json document per resource under a directory.
type FileStore struct {
	docStore
	dir string
}

// NewFileStore returns a store rooted at dir, creating it as needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := FileStore{dir: dir}
	s.backend = fileBackend{dir: dir}

	return &s, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// PutBlob writes an exported file next to the record documents.
func (s *FileStore) PutBlob(_ context.Context, name, _ string, body []byte) (string, error) {
	path := filepath.Join(s.dir, "exports", filepath.Base(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, body); err != nil {
		return "", err
	}
	return path, nil
}

type fileBackend struct {
	dir string
}

func (b fileBackend) path(kind string) string {
	return filepath.Join(b.dir, kind+".json")
}

func (b fileBackend) read(_ context.Context, kind string) ([]byte, error) {
	bb, err := os.ReadFile(b.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return bb, err
}

func (b fileBackend) write(_ context.Context, kind string, body []byte) error {
	return writeFileAtomic(b.path(kind), body)
}

// writeFileAtomic replaces path through a rename so readers never see a
// partial document.
func writeFileAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
