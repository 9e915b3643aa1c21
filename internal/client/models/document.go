package models

import (
	"fmt"
	"strings"
	"time"
)

// DocumentType classifies a document.
type DocumentType string

const (
	DocumentTypeID          DocumentType = "ID"
	DocumentTypeReceipt     DocumentType = "Receipt"
	DocumentTypeBill        DocumentType = "Bill"
	DocumentTypeCertificate DocumentType = "Certificate"
	DocumentTypeOther       DocumentType = "Other"
)

// DocumentTypes lists the accepted types in display order.
var DocumentTypes = []DocumentType{
	DocumentTypeID,
	DocumentTypeReceipt,
	DocumentTypeBill,
	DocumentTypeCertificate,
	DocumentTypeOther,
}

// Label is the human-readable name shown in type pickers.
func (t DocumentType) Label() string {
	if t == DocumentTypeID {
		return "ID Document"
	}
	return string(t)
}

func (t DocumentType) Valid() bool {
	for _, v := range DocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseDocumentType accepts a type name case-insensitively. An empty string
// maps to DocumentTypeOther.
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DocumentTypeOther, nil
	}
	for _, v := range DocumentTypes {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

// FileRef points at a document's binary content. Size is nil when the
// source could not report it (camera captures, for example).
type FileRef struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size *int64 `json:"size"`
}

// Document is a stored record. Records are never updated in place.
type Document struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        DocumentType `json:"type"`
	File        FileRef      `json:"file"`
	CreatedAt   time.Time    `json:"createdAt"`
	UserID      string       `json:"userId"`
}

// Draft is the input for adding a document.
type Draft struct {
	Name        string
	Description string
	Type        DocumentType
	File        FileRef
}
