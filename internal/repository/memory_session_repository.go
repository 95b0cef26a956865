package repository

import (
	"fmt"
	"sync"
	"time"

	"pdf-field-editor/internal/domain"
)

// MemorySessionRepository keeps sessions in process memory. Sessions do not
// survive a restart.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewMemorySessionRepository() domain.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

func (r *MemorySessionRepository) Create(session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *MemorySessionRepository) Get(id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (r *MemorySessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteIdleSince removes every session whose last activity is before cutoff
// and returns how many were removed.
func (r *MemorySessionRepository) DeleteIdleSince(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
