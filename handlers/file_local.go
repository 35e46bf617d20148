package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploads under a directory on disk. Used in
// development and in tests; the public URL is a path served by the app.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Upload(filename string, r io.Reader) (string, string, error) {
	key := objectKey(filename)
	path := filepath.Join(s.dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create file %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", "", fmt.Errorf("write file %s: %w", path, err)
	}
	return "/files/" + key, key, nil
}

func (s *LocalStore) Delete(publicID string) error {
	path := filepath.Join(s.dir, publicID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}
