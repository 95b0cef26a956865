package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-field-editor/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	MaxFileSize    int64
	LogLevel       string
	LogFormat      string
	OutputFilename string
	DateFormat     string
	SessionTTL     time.Duration
	AllowedOrigins []string
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
	GCSBucket      string
}

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://localhost:3000",
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		OutputFilename: getEnvOrDefault("OUTPUT_FILENAME", "edited-document.pdf"),
		DateFormat:     getEnvOrDefault("DATE_FORMAT", domain.DefaultDateFormat),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
		AllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		SupabaseURL:    getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:    getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseBucket: getEnvOrDefault("SUPABASE_BUCKET", ""),
		GCSBucket:      getEnvOrDefault("GCS_BUCKET", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns "text" or "json"
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetOutputFilename returns the filename offered for saved documents
func (c *AppConfig) GetOutputFilename() string {
	return c.OutputFilename
}

// GetDateFormat returns the Go layout used to pre-fill date fields
func (c *AppConfig) GetDateFormat() string {
	return c.DateFormat
}

// GetSessionTTL returns how long an idle session is kept
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseBucket returns the storage bucket saved documents are archived to
func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

// GetGCSBucket returns the Cloud Storage bucket saved documents are archived to
func (c *AppConfig) GetGCSBucket() string {
	return c.GCSBucket
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
