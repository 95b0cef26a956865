package domain

import (
	"context"
	"time"
)

// PDFBackend reads page geometry from a PDF and draws stamps onto it.
type PDFBackend interface {
	PageSizes(ctx context.Context, pdf []byte) ([]PageSize, error)
	Apply(ctx context.Context, pdf []byte, stamps []Stamp) ([]byte, error)
}

// ArchiveSink keeps a remote copy of a saved document.
type ArchiveSink interface {
	Name() string
	Store(ctx context.Context, path string, data []byte, contentType string) error
}

// SessionRepository holds editing sessions.
type SessionRepository interface {
	Create(session *Session) error
	Get(id string) (*Session, error)
	Delete(id string) error
	DeleteIdleSince(cutoff time.Time) int
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetOutputFilename() string
	GetDateFormat() string
	GetSessionTTL() time.Duration
	GetAllowedOrigins() []string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetGCSBucket() string
}
