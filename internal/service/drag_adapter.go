package service

import (
	"fmt"

	"pdf-field-editor/internal/domain"
)

// DragEvent is the final offset of one drag gesture.
type DragEvent struct {
	FieldID string  `json:"id"`
	DeltaX  float64 `json:"dx"`
	DeltaY  float64 `json:"dy"`
}

// DragAdapter feeds drag-end events into the field model. Intermediate
// pointer positions are never seen; only the total delta of a gesture.
type DragAdapter struct {
	sessions *SessionService
	logger   domain.Logger
}

func NewDragAdapter(sessions *SessionService, logger domain.Logger) *DragAdapter {
	return &DragAdapter{sessions: sessions, logger: logger}
}

// Apply moves every field named in events by its delta. All events are
// validated before any is applied, and they are applied together, so a
// multi-field drag is never seen half done.
func (a *DragAdapter) Apply(sessionID string, events ...DragEvent) error {
	deltas := make([]domain.Delta, 0, len(events))
	for i, e := range events {
		if !(domain.Point{X: e.DeltaX, Y: e.DeltaY}).Finite() {
			return fmt.Errorf("%w: event %d for field %q", domain.ErrInvalidDelta, i, e.FieldID)
		}
		deltas = append(deltas, domain.Delta{ID: e.FieldID, DX: e.DeltaX, DY: e.DeltaY})
	}

	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	return session.Do(func(_ *domain.Document, fields *domain.FieldList) error {
		if err := fields.MoveMany(deltas); err != nil {
			return err
		}
		a.logger.Debug("Drag applied", "session_id", sessionID, "events", len(events))
		return nil
	})
}
