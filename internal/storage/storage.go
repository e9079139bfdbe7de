// Package storage persists product images uploaded through the admin API.
// Local disk serves development; S3 serves production.
package storage

import (
	"context"
	"io"
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

// PutResult carries the stored object's key and the public URL saved onto
// the product's images column.
type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
