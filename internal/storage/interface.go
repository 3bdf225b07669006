package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface is the object store holding listing images.
// Objects are addressed by key, e.g. "spots/{spotID}/{uuid}.jpg".
type StorageInterface interface {
	// GeneratePresignedUploadURL returns a URL the client PUTs the object to
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if an object exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes an object. Deleting a missing object is not an error.
	DeleteFile(ctx context.Context, key string) error
}

// LocalStore is implemented by stores that the API process serves itself
// (the mock upload and download routes).
type LocalStore interface {
	StorageInterface
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
	// ValidUploadToken reports whether an upload URL with token was issued
	// for key and is still live
	ValidUploadToken(token, key string) bool
}
