// Package fileinfo derives display details for a document's companion file.
package fileinfo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

type kind struct {
	label string
	icon  string
}

var (
	kindImage    = kind{"Image", "file-image"}
	kindPDF      = kind{"PDF", "file-pdf-box"}
	kindDocument = kind{"Document", "file-document"}
)

var byExt = map[string]kind{
	"doc":  {"Word", "file-word"},
	"docx": {"Word", "file-word"},
	"xls":  {"Excel", "file-excel"},
	"xlsx": {"Excel", "file-excel"},
	"ppt":  {"PowerPoint", "file-powerpoint"},
	"pptx": {"PowerPoint", "file-powerpoint"},
	"txt":  {"Text", "file-document-outline"},
	"zip":  {"Archive", "zip-box"},
	"rar":  {"Archive", "zip-box"},
	"7z":   {"Archive", "zip-box"},
}

func classify(mime, name string) kind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return kindImage
	case mime == mimePDF:
		return kindPDF
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if k, ok := byExt[ext]; ok {
		return k
	}
	return kindDocument
}

// Label returns a short human-readable file kind such as "PDF" or "Word".
func Label(mime, name string) string {
	return classify(mime, name).label
}

// Icon returns the icon name for the file kind.
func Icon(mime, name string) string {
	return classify(mime, name).icon
}

// IsPDF reports whether mime denotes a PDF.
func IsPDF(mime string) bool {
	return mime == mimePDF
}

// FormatSize renders a size in KB with one decimal, or "" when unknown.
func FormatSize(size *int64) string {
	if size == nil || *size <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f KB", float64(*size)/1024)
}

// PageCount opens the PDF at path and returns its number of pages.
func PageCount(path string) (n int, err error) {
	defer func() {
		// the parser panics on some malformed inputs
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	return r.NumPage(), nil
}
