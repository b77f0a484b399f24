package archive

import (
	"context"
	"io"
)

// Store persists archived report objects under a slash-separated key.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader) error
}
