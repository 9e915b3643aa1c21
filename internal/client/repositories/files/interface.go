package files

import (
	"context"
	"io"
)

// Storage manages per-user companion files.
type Storage interface {
	// EnsureUserDir creates the user's area if it does not exist yet and
	// returns its location. It is idempotent.
	EnsureUserDir(ctx context.Context, userID string) (string, error)

	// Import copies the local file src into the user's area under name and
	// returns the URI of the copy. When name is taken a random suffix is
	// added before the extension.
	Import(ctx context.Context, userID, src, name string) (string, error)

	// Remove deletes the file identified by uri.
	Remove(ctx context.Context, uri string) error

	// Open returns the content of the file identified by uri.
	Open(ctx context.Context, uri string) (io.ReadCloser, error)

	// LocalPath returns a filesystem path for uri when the file lives in
	// this storage's local area.
	LocalPath(uri string) (string, bool)
}
