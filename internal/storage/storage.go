package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"imovia/internal/utils/logger"

	"github.com/google/uuid"
)

// MaxImageBytes caps a single uploaded image file.
const MaxImageBytes = 5 * 1024 * 1024

// ImageStore persists property images and yields the public path they
// are served from.
type ImageStore interface {
	Save(ctx context.Context, content []byte, filename, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
	List(ctx context.Context) ([]string, error)
}

var (
	store   ImageStore
	storeMu sync.RWMutex
)

// Register sets the active image store
func Register(s ImageStore) {
	storeMu.Lock()
	defer storeMu.Unlock()
	store = s
}

// Get returns the registered image store
func Get() ImageStore {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}

// LocalStore keeps images on disk under the uploads directory; they
// are served statically at /uploads/<file>.
type LocalStore struct {
	dir string
	log *logger.Logger
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, log: logger.New("local_store")}, nil
}

func (s *LocalStore) Save(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files are allowed, got %s", contentType)
	}
	if len(content) > MaxImageBytes {
		return "", fmt.Errorf("file exceeds %d byte limit", MaxImageBytes)
	}

	name := uuid.New().String() + filepath.Ext(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", s.log.Error("Failed to write image %s", err, name)
	}

	return "/uploads/" + name, nil
}

// Remove deletes a stored image. A path that is already gone is not an
// error.
func (s *LocalStore) Remove(ctx context.Context, path string) error {
	name := filepath.Base(path)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid image path %q", path)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, "/uploads/"+entry.Name())
	}
	return paths, nil
}

// Dir exposes the on-disk directory for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
