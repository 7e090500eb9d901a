package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MockStorageBackend implements document storage on the local
// filesystem, for development and testing without a cloud bucket.
type MockStorageBackend struct {
	baseURL      string // Server URL (e.g., "http://localhost:8080")
	documentsDir string
}

func NewMockStorageBackend(baseURL, uploadsDir string) (*MockStorageBackend, error) {
	documentsDir := filepath.Join(uploadsDir, "documents")
	if err := os.MkdirAll(documentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	return &MockStorageBackend{
		baseURL:      baseURL,
		documentsDir: documentsDir,
	}, nil
}

// GeneratePresignedUploadURL generates a mock upload URL pointing back
// at this server. The key travels in the query parameter so the upload
// handler knows where to save.
func (m *MockStorageBackend) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	uploadToken := uuid.New().String()
	return fmt.Sprintf("%s/api/v1/upload/%s?key=%s", m.baseURL, uploadToken, key), nil
}

func (m *MockStorageBackend) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/download/%s?key=%s", m.baseURL, encodeKey(key), key), nil
}

func (m *MockStorageBackend) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(m.documentsDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorageBackend) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(m.documentsDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockStorageBackend) SaveFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(m.documentsDir, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (m *MockStorageBackend) ReadFile(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(m.documentsDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// encodeKey creates a URL-safe hash of the key
func encodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
