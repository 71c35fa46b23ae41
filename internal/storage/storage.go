package storage

import (
	"context"
	"io"
	"time"
)

// Service stores user-uploaded objects (profile pictures) in remote object
// storage.
type Service interface {
	// UploadObject writes body under the given key and returns the object
	// location in s3://bucket/key form.
	UploadObject(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
