package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pdf-field-editor/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(s string) {
	m.mu.Lock()
	m.messages = append(m.messages, s)
	m.mu.Unlock()
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

func (m *MockLogger) Contains(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

type MockSessionRepository struct {
	sessions map[string]*domain.Session
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionRepository) Create(session *domain.Session) error {
	if session.ID == "" {
		return errors.New("session ID is required")
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) Get(id string) (*domain.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Delete(id string) error {
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionRepository) DeleteIdleSince(cutoff time.Time) int {
	n := 0
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// MockPDFBackend records the stamps it is asked to apply.
type MockPDFBackend struct {
	pages    []domain.PageSize
	pagesErr error
	applyErr error

	applied [][]domain.Stamp
}

func NewMockPDFBackend(pages ...domain.PageSize) *MockPDFBackend {
	return &MockPDFBackend{pages: pages}
}

func (m *MockPDFBackend) PageSizes(ctx context.Context, pdf []byte) ([]domain.PageSize, error) {
	if m.pagesErr != nil {
		return nil, m.pagesErr
	}
	return m.pages, nil
}

func (m *MockPDFBackend) Apply(ctx context.Context, pdf []byte, stamps []domain.Stamp) ([]byte, error) {
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	m.applied = append(m.applied, stamps)
	out := make([]byte, len(pdf))
	copy(out, pdf)
	return out, nil
}

type MockArchiveSink struct {
	name  string
	err   error
	delay time.Duration

	// release, when set, holds Store until it is closed.
	release chan struct{}

	mu     sync.Mutex
	stored map[string][]byte
	types  map[string]string
}

func NewMockArchiveSink(name string, err error) *MockArchiveSink {
	return &MockArchiveSink{
		name:   name,
		err:    err,
		stored: make(map[string][]byte),
		types:  make(map[string]string),
	}
}

func (m *MockArchiveSink) Name() string { return m.name }

func (m *MockArchiveSink) Store(ctx context.Context, path string, data []byte, contentType string) error {
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored[path] = data
	m.types[path] = contentType
	return nil
}

func (m *MockArchiveSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stored)
}

var fixedNow = func() time.Time {
	return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
}

func newTestSession(doc *domain.Document) *domain.Session {
	s := domain.NewSession("session-1", domain.NewFieldList(fixedNow, ""), fixedNow())
	if doc != nil {
		s.SetDocument(doc)
	}
	return s
}
