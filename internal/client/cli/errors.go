package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docvault/internal/common"
)

var (
	errAborted          = errors.New("aborted")
	errPasswordMismatch = fmt.Errorf("passwords do not match: %w", common.ErrInvalidInput)
)

// userMessage maps service errors to the text shown at the prompt.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, common.ErrDuplicateUser):
		return "User with this email already exists"
	case errors.Is(err, common.ErrUnauthenticated):
		return "Please log in first"
	case errors.Is(err, common.ErrNotFound):
		return "Document not found"
	case errors.Is(err, common.ErrSharingUnavailable):
		return "Sharing is not available on this device"
	case errors.Is(err, errPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, errAborted):
		return "Cancelled"
	}
	return err.Error()
}
