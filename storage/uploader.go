package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// NoopUploader accepts and discards every object. It stands in when no
// object store is configured.
type NoopUploader struct{}

func (NoopUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*UploadResult, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	return &UploadResult{Key: key}, nil
}

func (NoopUploader) Delete(context.Context, string) error { return nil }

func (NoopUploader) GetPublicURL(string) string { return "" }

// New returns the R2 uploader, or a NoopUploader when cfg is entirely empty.
// A partially filled cfg is an error.
func New(ctx context.Context, cfg CloudflareR2UploaderConfig) (FileUploader, error) {
	if cfg.IsZero() {
		return NoopUploader{}, nil
	}
	return NewCloudflareR2Uploader(ctx, cfg)
}
