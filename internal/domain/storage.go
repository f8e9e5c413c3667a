package domain

import (
	"context"
	"io"
)

// ObjectStore is the port to the image bucket. Put returns the public URL of
// the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a public URL previously returned by Put back to its
	// object key. The second return is false for foreign URLs.
	KeyFromURL(url string) (string, bool)
}
