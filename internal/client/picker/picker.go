// Package picker turns local paths chosen by the user into file
// descriptors for new documents.
package picker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/common"
)

// ScanName and ScanMIME describe every camera capture.
const (
	ScanName = "scanned_document.jpg"
	ScanMIME = "image/jpeg"
)

// Pick describes the regular file at path: its base name, detected MIME
// type and size.
func Pick(path string) (models.FileRef, error) {
	abs, fi, err := statRegular(path)
	if err != nil {
		return models.FileRef{}, err
	}

	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return models.FileRef{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	size := fi.Size()
	return models.FileRef{
		URI:  abs,
		Name: fi.Name(),
		Type: mt.String(),
		Size: &size,
	}, nil
}

// Scan describes an image capture at path. The descriptor always carries
// ScanName and ScanMIME and no size. Non-image files are rejected.
func Scan(path string) (models.FileRef, error) {
	abs, _, err := statRegular(path)
	if err != nil {
		return models.FileRef{}, err
	}

	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return models.FileRef{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return models.FileRef{}, fmt.Errorf("%w: %s is not an image (%s)", common.ErrInvalidInput, path, mt.String())
	}

	return models.FileRef{
		URI:  abs,
		Name: ScanName,
		Type: ScanMIME,
	}, nil
}

func statRegular(path string) (string, os.FileInfo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil, fmt.Errorf("%w: empty path", common.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	if !fi.Mode().IsRegular() {
		return "", nil, fmt.Errorf("%w: %s is not a regular file", common.ErrInvalidInput, path)
	}
	return abs, fi, nil
}
