// Package fsx abstracts file storage behind small read/write interfaces so
// services stay independent of the backing store (S3 in production, local disk
// in development).
package fsx

import (
	"context"
	"io"
)

// FileReader reads whole objects.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem is the full storage surface used by upload/download flows.
type FileSystem interface {
	FileReader

	// Join builds a storage key from path segments using the backend's
	// separator conventions.
	Join(parts ...string) string

	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
}
