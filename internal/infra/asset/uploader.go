// Package asset uploads image files to the third-party asset host and
// returns the public URL that is sent to the backend. Only the URL ever
// reaches the backend; image bytes go directly to the host.
package asset

import (
	"context"
	"mime"
	"path"
	"strings"

	"canopus/config"
	"canopus/internal/errors"

	"github.com/google/uuid"
	"gocloud.dev/blob"
)

// Uploader writes image bytes to a blob bucket. The bucket URL decides
// the backing host (file://, gs://, s3://); drivers are registered by
// the importing binary.
type Uploader struct {
	bucket    *blob.Bucket
	urlPrefix string
	folder    string
}

// NewUploader opens the configured bucket. Returns nil when no asset
// host is configured; callers treat a nil Uploader as upload-disabled.
func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	if cfg.Assets == nil || cfg.Assets.Bucket == "" {
		return nil, nil // uploads are optional
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Assets.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open asset bucket")
	}

	return &Uploader{
		bucket:    bucket,
		urlPrefix: strings.TrimRight(cfg.Assets.URLPrefix, "/"),
		folder:    cfg.Assets.Folder,
	}, nil
}

// Upload stores data under a unique key derived from name and returns
// the public URL.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	ext := path.Ext(name)
	key := uuid.NewString() + ext
	if u.folder != "" {
		key = path.Join(u.folder, key)
	}

	contentType := mime.TypeByExtension(ext)
	w, err := u.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}
	if _, err := w.Write(data); err != nil {
		w.Close()

		return "", errors.Wrap(err, "failed to write asset")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish asset write")
	}

	return u.urlPrefix + "/" + key, nil
}

// Close releases the underlying bucket.
func (u *Uploader) Close() error {
	return errors.WithStack(u.bucket.Close())
}
