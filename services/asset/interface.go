package asset

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound signals that no object exists under the requested key.
// Distinct from authorization failures so clients can tell a deployment
// problem from an access problem.
var ErrNotFound = errors.New("asset not found")

// Store serves protected blobs by key.
type Store interface {
	// Open returns the object's contents, its length and an opaque
	// entity tag usable as an ETag header.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error)
}
