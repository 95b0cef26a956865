package service

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"pdf-field-editor/internal/domain"
	apperrors "pdf-field-editor/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// ArchiveService stores a copy of every saved document in the configured
// sinks. It never changes what the client downloads.
type ArchiveService struct {
	sinks   []domain.ArchiveSink
	logger  domain.Logger
	now     func() time.Time
	timeout time.Duration

	inflight sync.WaitGroup
}

func NewArchiveService(sinks []domain.ArchiveSink, logger domain.Logger) *ArchiveService {
	return &ArchiveService{
		sinks:   sinks,
		logger:  logger,
		now:     time.Now,
		timeout: 30 * time.Second,
	}
}

// Enabled reports whether any sink is configured.
func (s *ArchiveService) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}

// Archive uploads result to all sinks concurrently. Every sink runs to
// completion; the returned error joins the failures of all sinks. Uploads
// keep running if the caller's context is cancelled.
func (s *ArchiveService) Archive(ctx context.Context, sessionID string, result *domain.SaveResult) error {
	if !s.Enabled() || result == nil {
		return nil
	}

	key := ArchivePath(sessionID, s.now(), result.Filename)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	errs := make([]error, len(s.sinks))
	var eg errgroup.Group
	for i, sink := range s.sinks {
		eg.Go(func() error {
			if err := sink.Store(ctx, key, result.Data, result.ContentType); err != nil {
				s.logger.Error("Archive upload failed", err, "sink", sink.Name(), "path", key)
				errs[i] = apperrors.NewNetworkError(sink.Name()+" upload failed", err)
				return nil
			}
			s.logger.Info("Document archived", "sink", sink.Name(), "path", key, "bytes", len(result.Data))
			return nil
		})
	}
	_ = eg.Wait()
	return errors.Join(errs...)
}

// ArchiveInBackground archives result without blocking the caller. Failures
// are logged. Wait blocks until these uploads have finished.
func (s *ArchiveService) ArchiveInBackground(ctx context.Context, sessionID string, result *domain.SaveResult) {
	if !s.Enabled() || result == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.Archive(ctx, sessionID, result); err != nil {
			s.logger.Warn("Saved document was not archived", "session_id", sessionID, "error", err)
		}
	}()
}

// Wait blocks until all background uploads have finished.
func (s *ArchiveService) Wait() {
	if s == nil {
		return
	}
	s.inflight.Wait()
}

// ArchivePath is the object key for a saved document.
func ArchivePath(sessionID string, at time.Time, filename string) string {
	return path.Join(sessionID, at.UTC().Format("20060102T150405Z")+"-"+filename)
}
