// Package filex holds small filesystem helpers shared by the companion file
// storage and the share flow.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExt is used when a file name carries no usable extension.
const DefaultExt = "file"

// EnsureDir creates dir (and parents) if it does not exist yet. It is
// idempotent and fails when a non-directory already occupies the path.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// Ext returns the extension of name without the dot, case preserved, or
// DefaultExt when there is none.
func Ext(name string) string {
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return ext
	}
	return DefaultExt
}

// Exists reports whether path exists. Stat errors other than "not exist"
// count as existing.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// CopyFile copies src to dst through a temporary file in dst's directory and
// renames it into place, so dst is either absent or complete. It returns the
// number of bytes written.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	return WriteFile(dst, in, 0o660)
}

// WriteFile streams r into path via a temp file then rename.
func WriteFile(path string, r io.Reader, mode os.FileMode) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("copy: %w", err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("chmod: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("rename: %w", err)
	}
	return n, nil
}

// IsWithin reports whether path lies inside dir after cleaning both.
func IsWithin(dir, path string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
