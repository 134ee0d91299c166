package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage writes uploaded bytes under <root>/<projectID>/<uuid><ext>.
// The key is random per file, so identical upload names within a project
// never collide on disk; the original name lives only in the database.
type Storage struct{ root string }

func NewStorage(root string) *Storage { return &Storage{root: root} }

func (s *Storage) Save(projectID int, name string, r io.Reader) (string, error) {
	key := fmt.Sprintf("%d/%s%s", projectID, uuid.NewString(), filepath.Ext(name))
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

func (s *Storage) Open(key string) (*os.File, error) {
	return os.Open(s.path(key))
}

func (s *Storage) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

func (s *Storage) Remove(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}
