package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowedExts is the upload allow-list. Anything else is dropped before it
// reaches a Store.
var allowedExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
	".heic": {},
	".heif": {},
}

// SavedFile describes one stored upload.
type SavedFile struct {
	// Name is the generated object name relative to the store root.
	Name string
	// URL is the public URL the file is served from.
	URL string
}

// Store persists uploaded attachment bytes.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*SavedFile, error)
}

// AllowedExt reports whether the filename carries an allow-listed extension.
func AllowedExt(filename string) bool {
	_, ok := allowedExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// objectName generates a collision-resistant name under a dated prefix. Two
// uploads sharing an original filename never produce the same object name.
func objectName(originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%s-%s%s",
		now.UTC().Format("2006-01-02"),
		now.UTC().Format("20060102-150405"),
		strings.Split(uuid.NewString(), "-")[0],
		ext,
	)
}

func joinURL(base, name string) string {
	return strings.TrimSuffix(base, "/") + "/" + name
}
