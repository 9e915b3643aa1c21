// Package common defines shared sentinel errors and small helpers used across
// the docvault client layers. Callers should use errors.Is to match these
// values; storage failures usually wrap both ErrStorageIO and the underlying
// cause.
package common

import "errors"

var (
	// Session errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUnauthenticated    = errors.New("user not authenticated")

	// Document errors.
	ErrNotFound = errors.New("document not found")

	// ErrStorageIO marks a failed read, write, copy or delete against the
	// key-value store or the companion file storage.
	ErrStorageIO = errors.New("storage i/o error")

	ErrSharingUnavailable = errors.New("sharing is not available on this device")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")
)
