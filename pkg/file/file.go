package file

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

// Info describes a stored file.
type Info struct {
	Name     string // base name
	Path     string // path relative to the source root
	Size     int64
	ModTime  time.Time
	MIMEType string // as recorded by the backend, may be empty
	ETag     string
}

// Source reads stored files.
type Source interface {
	// Stat reports metadata without reading content.
	Stat(ctx context.Context, path string) (Info, error)
	// Open returns the content. The caller closes the reader.
	Open(ctx context.Context, path string) (io.ReadCloser, Info, error)
}

// SanitizeFilename removes any path components and dangerous characters from a filename.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
