package config

import (
	"context"
	"fmt"

	"pdf-field-editor/internal/domain"
	"pdf-field-editor/internal/infra/supabase"
	"pdf-field-editor/internal/repository"
	"pdf-field-editor/internal/service"
	"pdf-field-editor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	SupabaseClient    domain.SupabaseClient
	SessionRepository domain.SessionRepository

	SessionService *service.SessionService
	DocumentLoader *service.DocumentLoader
	DragAdapter    *service.DragAdapter
	SavePipeline   *service.SavePipeline
	ArchiveService *service.ArchiveService

	closers []func() error
}

// NewContainer creates a new dependency injection container. Archive sinks
// are only wired when their bucket is configured.
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())

	c := &Container{
		Config:            config,
		Logger:            appLogger,
		SessionRepository: repository.NewMemorySessionRepository(),
	}

	sinks, err := c.archiveSinks(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	renderer, err := service.NewSignatureRenderer()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.ArchiveService = service.NewArchiveService(sinks, appLogger)
	c.SessionService = service.NewSessionService(
		c.SessionRepository,
		renderer,
		config.GetDateFormat(),
		config.GetSessionTTL(),
		appLogger,
	)
	c.DocumentLoader = service.NewDocumentLoader(config.GetMaxFileSize())
	c.DragAdapter = service.NewDragAdapter(c.SessionService, appLogger)
	c.SavePipeline = service.NewSavePipeline(
		service.NewPDFCPUStamper(appLogger),
		service.NewTextEncoder(),
		c.ArchiveService,
		config.GetOutputFilename(),
		appLogger,
	)

	return c, nil
}

func (c *Container) archiveSinks(ctx context.Context) ([]domain.ArchiveSink, error) {
	var sinks []domain.ArchiveSink

	if bucket := c.Config.GetSupabaseBucket(); bucket != "" {
		client := supabase.NewSupabaseClient(c.Config, c.Logger)
		if err := client.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize supabase archive: %w", err)
		}
		c.SupabaseClient = client
		sinks = append(sinks, repository.NewSupabaseArchiveRepository(client, bucket))
		c.Logger.Info("Archiving saved documents to Supabase", "bucket", bucket)
	}

	if bucket := c.Config.GetGCSBucket(); bucket != "" {
		sink, client, err := repository.NewGCSArchiveRepository(ctx, bucket, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gcs archive: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		sinks = append(sinks, sink)
		c.Logger.Info("Archiving saved documents to Cloud Storage", "bucket", bucket)
	}

	return sinks, nil
}

// Close waits for background archive uploads, then releases clients opened
// by the container
func (c *Container) Close() error {
	c.ArchiveService.Wait()

	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
