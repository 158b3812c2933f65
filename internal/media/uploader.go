// Package media stores product image blobs and hands back durable URLs for
// the admin product form.
package media

import (
	"context"
	"io"
)

// Uploader accepts a binary blob and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
