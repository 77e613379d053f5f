package blob

import (
	"context"
)

// Store abstracts the object storage that holds the landing CSV files.
// Implementations must return an error wrapping claimload.ErrObjectNotFound
// when the requested object does not exist, so callers can distinguish a
// missing source file from a transport failure.
type Store interface {
	// Get downloads the named object from the container and returns its raw bytes.
	Get(ctx context.Context, container, name string) ([]byte, error)
}
