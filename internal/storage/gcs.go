package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/newsroom-content-api/internal/config"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// GCSStore is a BlobStore backed by a Google Cloud Storage bucket
type GCSStore struct {
	client *gcs.Client
	bucket string
	urlTTL time.Duration
	log    zerolog.Logger
}

// NewGCSStore creates a GCS-backed blob store
func NewGCSStore(ctx context.Context, cfg *config.StorageConfig, log zerolog.Logger) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	store := &GCSStore{
		client: client,
		bucket: cfg.Bucket,
		urlTTL: cfg.URLTTL,
		log:    log.With().Str("component", "storage").Logger(),
	}

	store.log.Info().
		Str("bucket", cfg.Bucket).
		Dur("url_ttl", cfg.URLTTL).
		Msg("Blob store initialized")

	return store, nil
}

// SignedUploadURL returns a time-bounded PUT URL for the given ref
func (s *GCSStore) SignedUploadURL(ctx context.Context, ref, contentType string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(ref, &gcs.SignedURLOptions{
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     time.Now().Add(s.urlTTL),
		Scheme:      gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign upload URL for %s: %w", ref, err)
	}
	return url, nil
}

// URL resolves a ref to a signed GET URL, or empty when the object is gone
func (s *GCSStore) URL(ctx context.Context, ref string) (string, error) {
	_, err := s.client.Bucket(s.bucket).Object(ref).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat object %s: %w", ref, err)
	}

	url, err := s.client.Bucket(s.bucket).SignedURL(ref, &gcs.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: time.Now().Add(s.urlTTL),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", ref, err)
	}
	return url, nil
}

// Upload writes bytes to the bucket under the given ref
func (s *GCSStore) Upload(ctx context.Context, ref, contentType string, body io.Reader) error {
	writer := s.client.Bucket(s.bucket).Object(ref).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()
		return fmt.Errorf("failed to copy bytes to object %s: %w", ref, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer for %s: %w", ref, err)
	}
	return nil
}

// Delete removes the object; a missing object is treated as already deleted
func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	err := s.client.Bucket(s.bucket).Object(ref).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", ref, err)
	}
	return nil
}

// Close releases the underlying client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
