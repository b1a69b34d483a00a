package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/grillshine/grillshine/pkg/logging"
)

// DiskStore writes uploads under a local directory and serves them from a
// relative URL path.
type DiskStore struct {
	dir      string
	basePath string
	logger   *logging.Logger
}

// NewDiskStore creates the upload directory if needed. basePath is the URL
// prefix the files are served from, e.g. "/uploads".
func NewDiskStore(dir, basePath string, logger *logging.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if basePath == "" {
		basePath = "/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, basePath: basePath, logger: logger}, nil
}

// Dir returns the directory files are written under.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the file under a dated subdirectory with a generated name.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (*SavedFile, error) {
	name := objectName(originalName, time.Now())
	fullPath := filepath.Join(s.dir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create date dir: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("uploads: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(fullPath)
		return nil, fmt.Errorf("uploads: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("uploads: close %s: %w", name, err)
	}

	s.logger.Debug("attachment written to disk", "name", name, "original", originalName)
	return &SavedFile{Name: name, URL: joinURL(s.basePath, name)}, nil
}

var _ Store = (*DiskStore)(nil)
