package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pdf-field-editor/internal/domain"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCSArchiveRepository stores saved documents in a Cloud Storage bucket.
// Objects are write-once: an existing object at the same path is kept.
type GCSArchiveRepository struct {
	bucket *storage.BucketHandle
	name   string
	logger domain.Logger
}

// NewGCSArchiveRepository uses application default credentials.
func NewGCSArchiveRepository(ctx context.Context, bucket string, logger domain.Logger) (*GCSArchiveRepository, *storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSArchiveRepository{bucket: client.Bucket(bucket), name: bucket, logger: logger}, client, nil
}

func (r *GCSArchiveRepository) Name() string {
	return "gcs"
}

func (r *GCSArchiveRepository) Store(ctx context.Context, path string, data []byte, contentType string) error {
	writer := r.bucket.Object(path).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		if alreadyExists(err) {
			r.logger.Debug("Archive object already exists", "bucket", r.name, "object", path)
			return nil
		}
		return fmt.Errorf("failed to write gs://%s/%s: %w", r.name, path, err)
	}

	if err := writer.Close(); err != nil {
		if alreadyExists(err) {
			r.logger.Debug("Archive object already exists", "bucket", r.name, "object", path)
			return nil
		}
		return fmt.Errorf("failed to finalize gs://%s/%s: %w", r.name, path, err)
	}
	return nil
}

func alreadyExists(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}
