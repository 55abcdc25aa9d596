// Package storage keeps uploaded body-analysis files in object storage.
package storage

import (
	"context"
	"io"
)

// ObjectStorage stores an object under key. body must be readable from the
// start; size is its length in bytes.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) error
}
