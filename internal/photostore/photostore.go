package photostore

import (
	"context"
	"io"
)

// PhotoStore holds listing photos. The record service only ever stores the
// returned key (wrapped in a URL); the bytes live here.
type PhotoStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}
