package storage

import (
	"context"
	"io"
	"time"
)

// StorageBackend is the blob-store boundary for uploaded supporting
// documents. Backends: local filesystem (mock) for development and
// Firebase/GCS for production.
type StorageBackend interface {
	// GeneratePresignedUploadURL returns a URL the client can PUT the
	// file to. key is the storage path for the file.
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL returns a URL the file can be fetched
	// from.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile and ReadFile back the local HTTP upload/download handlers.
	// Only the mock implementation needs them; the Firebase backend
	// serves uploads directly through signed URLs.
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
}

// Config holds storage configuration.
type Config struct {
	Type      string // "mock" or "firebase"
	MockDir   string // Directory for mock storage
	BaseURL   string // Server base URL for generating mock URLs
	Bucket    string // GCS bucket for the firebase backend
	CredsFile string // Service account credentials file
}
