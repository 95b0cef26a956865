package domain

import (
	"sync"
	"time"
)

// Session is one editing session: exactly one (optional) document and the
// field list placed over it. All access goes through the session's lock, so
// every field operation completes before the next one starts.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	document   *Document
	fields     *FieldList
	lastAccess time.Time
}

// NewSession creates a session without a document.
func NewSession(id string, fields *FieldList, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		fields:     fields,
		lastAccess: now,
	}
}

// Do runs fn with exclusive access to the session state.
func (s *Session) Do(fn func(doc *Document, fields *FieldList) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.document, s.fields)
}

// SetDocument replaces the loaded document. The field list is kept.
func (s *Session) SetDocument(doc *Document) {
	s.mu.Lock()
	s.document = doc
	s.mu.Unlock()
}

// Touch records activity at t.
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	if t.After(s.lastAccess) {
		s.lastAccess = t
	}
	s.mu.Unlock()
}

// LastAccess returns the time of the most recent activity.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Snapshot is a point-in-time copy of a session used by the save pipeline.
// Document data is shared, never written.
type Snapshot struct {
	SessionID string
	Document  *Document
	Fields    []Field
}

// Snapshot copies the current document reference and fields.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SessionID: s.ID,
		Document:  s.document,
		Fields:    s.fields.Snapshot(),
	}
}

// View is the client-facing representation of a session.
type View struct {
	ID        string      `json:"id"`
	Document  *Document   `json:"document"`
	Fields    []FieldView `json:"fields"`
	CreatedAt time.Time   `json:"created_at"`
}

// FieldView is a field as sent to clients.
type FieldView struct {
	Field
	Content *string `json:"content"`
}

// NewFieldView renders content in its wire form: a data URI for images, the
// plain string for text.
func NewFieldView(f Field) FieldView {
	v := FieldView{Field: f}
	switch c := f.Content.(type) {
	case ImageContent:
		s := c.DataURI()
		v.Content = &s
	case TextContent:
		s := string(c)
		v.Content = &s
	}
	return v
}

// View returns the session as sent to clients.
func (s *Session) View() View {
	snap := s.Snapshot()
	fields := make([]FieldView, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		fields = append(fields, NewFieldView(f))
	}
	return View{
		ID:        s.ID,
		Document:  snap.Document,
		Fields:    fields,
		CreatedAt: s.CreatedAt,
	}
}
