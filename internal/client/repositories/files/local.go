package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/docvault/internal/filex"
)

// LocalStorage keeps companion files on the local filesystem.
type LocalStorage struct {
	root string
}

// NewLocalStorage roots the storage at dataDir; files go to
// dataDir/documents/<userID>/.
func NewLocalStorage(dataDir string) *LocalStorage {
	root, err := filepath.Abs(filepath.Join(dataDir, documentsDir))
	if err != nil {
		root = filepath.Join(dataDir, documentsDir)
	}
	return &LocalStorage{root: root}
}

// Root is the directory holding all user areas.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) userDir(userID string) (string, error) {
	if !validUserID(userID) {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	return filepath.Join(s.root, userID), nil
}

func (s *LocalStorage) EnsureUserDir(ctx context.Context, userID string) (string, error) {
	dir, err := s.userDir(userID)
	if err != nil {
		return "", err
	}
	return filex.EnsureDir(dir)
}

func (s *LocalStorage) Import(ctx context.Context, userID, src, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !validName(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	dir, err := s.EnsureUserDir(ctx, userID)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, name)
	for filex.Exists(dst) {
		dst = filepath.Join(dir, withSuffix(name))
	}

	if _, err := filex.CopyFile(src, dst); err != nil {
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	return dst, nil
}

func (s *LocalStorage) Remove(ctx context.Context, uri string) error {
	if !filex.IsWithin(s.root, uri) {
		return fmt.Errorf("remove %s: outside of %s", uri, s.root)
	}
	return os.Remove(uri)
}

func (s *LocalStorage) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(uri)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	return f, nil
}

func (s *LocalStorage) LocalPath(uri string) (string, bool) {
	if !filex.IsWithin(s.root, uri) {
		return "", false
	}
	return uri, true
}

var _ Storage = (*LocalStorage)(nil)
