package repositories

import (
	"context"
	"io"
)

// BlobStore stores uploaded media objects
type BlobStore interface {
	// Put uploads an object under key
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// PresignGet returns a time-limited URL for reading the object
	PresignGet(ctx context.Context, key string) (string, error)

	// Remove deletes an object; removing a missing object is not an error
	Remove(ctx context.Context, key string) error
}
