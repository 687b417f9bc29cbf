package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local implements Source for a directory on the local filesystem.
// All lookups are confined to baseDir.
type Local struct {
	baseDir string // absolute
}

// NewLocal creates a source rooted at baseDir, which must exist.
func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	// Must resolve to absolute path for security - prevents relative path confusion
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	info, err := os.Stat(absBaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, baseDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, baseDir)
	}

	return &Local{baseDir: absBaseDir}, nil
}

// Stat reports a regular file's metadata.
func (s *Local) Stat(ctx context.Context, path string) (Info, error) {
	if err := checkContext(ctx); err != nil {
		return Info{}, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return Info{}, err
	}
	return s.stat(absPath, path)
}

// Open opens a regular file for reading.
func (s *Local) Open(ctx context.Context, path string) (io.ReadCloser, Info, error) {
	if err := checkContext(ctx); err != nil {
		return nil, Info{}, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, Info{}, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, Info{}, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}

	// Stat the open descriptor so size and content cannot diverge.
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, Info{}, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, Info{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	return f, s.info(fi, absPath, path), nil
}

func (s *Local) stat(absPath, path string) (Info, error) {
	fi, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Info{}, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if fi.IsDir() {
		return Info{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return s.info(fi, absPath, path), nil
}

func (s *Local) info(fi os.FileInfo, absPath, path string) Info {
	relPath, err := filepath.Rel(s.baseDir, absPath)
	if err != nil {
		relPath = path
	}
	return Info{
		Name:    fi.Name(),
		Path:    filepath.ToSlash(relPath),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
}

// resolvePath validates and resolves a path within the base directory using
// string prefix checking, which rejects ../ escapes.
func (s *Local) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	prefix := s.baseDir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(absPath, prefix) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
