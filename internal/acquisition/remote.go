package acquisition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"salarydash/internal/config"
	"salarydash/internal/errors"
)

// ObjectStoreFetcher downloads the survey export from an S3-compatible object
// store (Backblaze B2 in the original deployment). The remote file id is the
// object key within the configured bucket.
type ObjectStoreFetcher struct {
	client *minio.Client
	bucket string
	object string
	logger *slog.Logger
}

// NewObjectStoreFetcher builds a fetcher from the remote configuration. All
// three credentials must be present; they are injected via the environment,
// never hardcoded.
func NewObjectStoreFetcher(cfg config.RemoteConfig, logger *slog.Logger) (*ObjectStoreFetcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if !cfg.HasCredentials() {
		return nil, errors.NewConfigError("remote store credentials not configured", nil)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.KeyID, cfg.Key, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.NewConfigError("failed to create object store client", err)
	}

	return &ObjectStoreFetcher{
		client: client,
		bucket: cfg.Bucket,
		object: cfg.FileID,
		logger: logger,
	}, nil
}

// Fetch downloads the configured object to dest. A single attempt, no retry;
// the acquisition service turns any failure into DataUnavailable.
func (f *ObjectStoreFetcher) Fetch(ctx context.Context, dest string) error {
	f.logger.InfoContext(ctx, "downloading survey export",
		slog.String("bucket", f.bucket),
		slog.String("object", f.object))

	if err := f.client.FGetObject(ctx, f.bucket, f.object, dest, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("download object %s/%s: %w", f.bucket, f.object, err)
	}

	return nil
}
