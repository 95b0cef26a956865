package service

import (
	"fmt"
	"time"

	"pdf-field-editor/internal/domain"

	"github.com/google/uuid"
)

// SessionService owns editing sessions and exposes the field operations.
//
// Field operations that name an unknown field id succeed without doing
// anything: a client may still hold callbacks for a field it just deleted.
type SessionService struct {
	repo       domain.SessionRepository
	signatures *SignatureRenderer
	logger     domain.Logger
	now        func() time.Time
	dateFormat string
	ttl        time.Duration
}

func NewSessionService(
	repo domain.SessionRepository,
	signatures *SignatureRenderer,
	dateFormat string,
	ttl time.Duration,
	logger domain.Logger,
) *SessionService {
	return &SessionService{
		repo:       repo,
		signatures: signatures,
		logger:     logger,
		now:        time.Now,
		dateFormat: dateFormat,
		ttl:        ttl,
	}
}

// Create starts a new session, optionally with a document already loaded.
// Sessions idle for longer than the TTL are dropped first.
func (s *SessionService) Create(doc *domain.Document) (*domain.Session, error) {
	now := s.now()
	if s.ttl > 0 {
		if n := s.repo.DeleteIdleSince(now.Add(-s.ttl)); n > 0 {
			s.logger.Info("Expired idle sessions", "count", n)
		}
	}

	session := domain.NewSession(uuid.New().String(), domain.NewFieldList(s.now, s.dateFormat), now.UTC())
	if doc != nil {
		session.SetDocument(doc)
	}
	if err := s.repo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Session created", "session_id", session.ID, "has_document", doc != nil)
	return session, nil
}

// Get returns the session and records activity on it.
func (s *SessionService) Get(id string) (*domain.Session, error) {
	session, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	session.Touch(s.now())
	return session, nil
}

// Discard drops a session and everything it holds.
func (s *SessionService) Discard(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("Session discarded", "session_id", id)
	return nil
}

// LoadDocument replaces the session's document. Existing fields are kept.
func (s *SessionService) LoadDocument(id string, doc *domain.Document) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	session.SetDocument(doc)
	s.logger.Info("Document loaded", "session_id", id, "name", doc.Name, "size", doc.Size)
	return nil
}

// AddField appends a field of the given kind on a zero-based page.
func (s *SessionService) AddField(id string, kind domain.FieldKind, page int) (domain.Field, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.Field{}, err
	}

	var field domain.Field
	err = session.Do(func(_ *domain.Document, fields *domain.FieldList) error {
		var addErr error
		field, addErr = fields.AddOnPage(kind, page)
		return addErr
	})
	if err != nil {
		return domain.Field{}, err
	}
	s.logger.Debug("Field added", "session_id", id, "field_id", field.ID)
	return field, nil
}

// UpdateContent parses raw for the field's kind and stores it. A nil raw
// clears the content.
func (s *SessionService) UpdateContent(id, fieldID string, raw *string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	return session.Do(func(_ *domain.Document, fields *domain.FieldList) error {
		f, ok := fields.Get(fieldID)
		if !ok {
			return nil
		}
		content, err := domain.ParseContent(f.Kind, raw)
		if err != nil {
			return err
		}
		return fields.UpdateContent(fieldID, content)
	})
}

// Sign renders a signature image for label and stores it on the field.
func (s *SessionService) Sign(id, fieldID, label string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	png, err := s.signatures.Render(label)
	if err != nil {
		return err
	}

	return session.Do(func(_ *domain.Document, fields *domain.FieldList) error {
		return fields.UpdateContent(fieldID, domain.ImageContent{MediaType: domain.MediaTypePNG, Data: png})
	})
}

// DeleteField removes a field.
func (s *SessionService) DeleteField(id, fieldID string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	return session.Do(func(_ *domain.Document, fields *domain.FieldList) error {
		fields.Delete(fieldID)
		return nil
	})
}
