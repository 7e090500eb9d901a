package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseStorageBackend stores documents in a GCS bucket behind
// Firebase, issuing V4 signed URLs for uploads and downloads.
type FirebaseStorageBackend struct {
	bucket *gcs.BucketHandle
}

func NewFirebaseStorageBackend(ctx context.Context, bucketName, credsFile string) (*FirebaseStorageBackend, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, option.WithCredentialsFile(credsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open storage bucket: %w", err)
	}

	return &FirebaseStorageBackend{bucket: bucket}, nil
}

func (f *FirebaseStorageBackend) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	url, err := f.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      "PUT",
		Expires:     time.Now().Add(expiresIn),
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign upload url: %w", err)
	}
	return url, nil
}

func (f *FirebaseStorageBackend) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	url, err := f.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiresIn),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign download url: %w", err)
	}
	return url, nil
}

func (f *FirebaseStorageBackend) FileExists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := f.bucket.Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, attrs.Size, nil
}

func (f *FirebaseStorageBackend) DeleteFile(ctx context.Context, key string) error {
	err := f.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// SaveFile and ReadFile exist for the mock backend's local HTTP
// handlers; clients of the firebase backend upload and download through
// signed URLs directly.
func (f *FirebaseStorageBackend) SaveFile(key string, reader io.Reader) error {
	return errors.New("direct writes not supported for firebase storage, use the signed upload url")
}

func (f *FirebaseStorageBackend) ReadFile(key string) (io.ReadCloser, error) {
	return nil, errors.New("direct reads not supported for firebase storage, use the signed download url")
}
