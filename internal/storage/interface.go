package storage

import (
	"context"
	"errors"
	"io"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps attachment files and hands out public locators for them.
type BlobStore interface {
	Upload(ctx context.Context, name string, content []byte, contentType string) error
	PublicURL(name string) string
}

// BlobReader is implemented by stores whose blobs are served by this
// service instead of by the backend itself.
type BlobReader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}
