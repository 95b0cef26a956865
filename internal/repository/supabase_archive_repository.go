package repository

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"pdf-field-editor/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseArchiveRepository stores saved documents in a Supabase Storage
// bucket.
type SupabaseArchiveRepository struct {
	client domain.SupabaseClient
	bucket string

	// storage-go sets per-upload headers on a transport shared by all
	// requests of the client.
	mu sync.Mutex
}

func NewSupabaseArchiveRepository(client domain.SupabaseClient, bucket string) *SupabaseArchiveRepository {
	return &SupabaseArchiveRepository{client: client, bucket: bucket}
}

func (r *SupabaseArchiveRepository) Name() string {
	return "supabase"
}

// Store uploads data to bucket/path, replacing any existing object.
func (r *SupabaseArchiveRepository) Store(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db := r.client.DB()
	if db == nil || db.Storage == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	upsert := true
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := db.Storage.UploadFile(r.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", path, r.bucket, err)
	}
	return nil
}
