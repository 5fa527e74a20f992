package storage

import (
	"context"
	"io"
)

// Storage stores uploaded documents and returns a stable reference URL.
// The local filesystem implementation is the default; an object-storage
// backend can be swapped in without touching callers.
type Storage interface {
	Save(ctx context.Context, fileName string, r io.Reader) (string, error)
}
