package config

import (
	"context"
	"testing"
)

func TestNewContainer_WithoutArchives(t *testing.T) {
	t.Setenv("SUPABASE_BUCKET", "")
	t.Setenv("GCS_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")

	c, err := NewContainer(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer c.Close()

	if c.SessionService == nil || c.DocumentLoader == nil || c.DragAdapter == nil || c.SavePipeline == nil {
		t.Fatal("expected all services to be wired")
	}
	if c.ArchiveService.Enabled() {
		t.Fatal("expected archiving to be disabled without buckets")
	}
	if c.SupabaseClient != nil {
		t.Fatal("expected no supabase client without a bucket")
	}
}

func TestNewContainer_SupabaseNeedsCredentials(t *testing.T) {
	t.Setenv("SUPABASE_BUCKET", "archive")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("GCS_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")

	if _, err := NewContainer(context.Background()); err == nil {
		t.Fatal("expected an error for a bucket without credentials")
	}
}

func TestNewContainer_SupabaseArchive(t *testing.T) {
	t.Setenv("SUPABASE_BUCKET", "archive")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("GCS_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")

	c, err := NewContainer(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer c.Close()

	if !c.ArchiveService.Enabled() {
		t.Fatal("expected archiving to be enabled")
	}
	if c.SupabaseClient == nil || c.SupabaseClient.DB() == nil {
		t.Fatal("expected an initialized supabase client")
	}
}
