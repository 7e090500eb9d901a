package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStorageBackend(t *testing.T) {
	backend, err := NewMockStorageBackend("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("SaveAndRead", func(t *testing.T) {
		require.NoError(t, backend.SaveFile("10/transcript.pdf", strings.NewReader("pdf bytes")))

		exists, size, err := backend.FileExists(ctx, "10/transcript.pdf")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, int64(9), size)

		reader, err := backend.ReadFile("10/transcript.pdf")
		require.NoError(t, err)
		defer reader.Close()
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(data))
	})

	t.Run("MissingFile", func(t *testing.T) {
		exists, _, err := backend.FileExists(ctx, "10/nope.pdf")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("PresignedURLs", func(t *testing.T) {
		upload, err := backend.GeneratePresignedUploadURL(ctx, "10/receipt.png", "image/png", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, upload, "http://localhost:8080/api/v1/upload/")
		assert.Contains(t, upload, "key=10/receipt.png")

		download, err := backend.GeneratePresignedDownloadURL(ctx, "10/receipt.png", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, download, "/api/v1/download/")
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		require.NoError(t, backend.SaveFile("10/temp.txt", strings.NewReader("x")))
		require.NoError(t, backend.DeleteFile(ctx, "10/temp.txt"))
		assert.NoError(t, backend.DeleteFile(ctx, "10/temp.txt"))
	})
}
