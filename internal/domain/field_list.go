package domain

import (
	"fmt"
	"time"
)

// FieldList is the ordered set of fields of one editing session.
//
// Operations on an id that is not in the list are no-ops and never return
// an error: stale client callbacks may race with deletion. FieldList is not
// safe for concurrent use; the owning session serializes access.
type FieldList struct {
	fields     []*Field
	next       int
	now        func() time.Time
	dateFormat string
}

// DefaultDateFormat matches an en-US short date, e.g. 10/19/2026.
const DefaultDateFormat = "1/2/2006"

// NewFieldList returns an empty list. Date fields are pre-filled with now()
// formatted with dateFormat.
func NewFieldList(now func() time.Time, dateFormat string) *FieldList {
	if now == nil {
		now = time.Now
	}
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &FieldList{now: now, dateFormat: dateFormat}
}

// Add appends a new field of kind k at DefaultFieldPosition on the first
// page.
func (l *FieldList) Add(k FieldKind) (Field, error) {
	return l.AddOnPage(k, 0)
}

// AddOnPage is Add for a field placed on the given zero-based page. Whether
// the page exists is only known once the document is saved.
func (l *FieldList) AddOnPage(k FieldKind, page int) (Field, error) {
	if !k.Valid() {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownFieldKind, k)
	}
	if page < 0 {
		return Field{}, &ValidationError{Field: "page_index", Message: "must not be negative"}
	}

	f := &Field{
		ID:        fmt.Sprintf("%s-%d", k, l.next),
		Kind:      k,
		Position:  DefaultFieldPosition,
		PageIndex: page,
	}
	if k == FieldKindDate {
		f.Content = TextContent(l.now().Format(l.dateFormat))
	}
	l.next++
	l.fields = append(l.fields, f)
	return f.clone(), nil
}

// Delta is a pending move of one field.
type Delta struct {
	ID string
	DX float64
	DY float64
}

// Move shifts the field by (dx, dy). Positions are not clamped, but a
// delta or resulting position that is not finite is rejected with
// ErrInvalidDelta and the field stays where it was.
func (l *FieldList) Move(id string, dx, dy float64) error {
	return l.MoveMany([]Delta{{ID: id, DX: dx, DY: dy}})
}

// MoveMany applies deltas in order. Either every delta is applied or, on
// error, none is.
func (l *FieldList) MoveMany(deltas []Delta) error {
	moved := make(map[*Field]Point, len(deltas))
	for i, d := range deltas {
		if !(Point{X: d.DX, Y: d.DY}).Finite() {
			return fmt.Errorf("%w: delta %d for field %q", ErrInvalidDelta, i, d.ID)
		}
		f := l.find(d.ID)
		if f == nil || (d.DX == 0 && d.DY == 0) {
			continue
		}
		p, ok := moved[f]
		if !ok {
			p = f.Position
		}
		p = Point{X: p.X + d.DX, Y: p.Y + d.DY}
		if !p.Finite() {
			return fmt.Errorf("%w: field %q would leave the finite range", ErrInvalidDelta, d.ID)
		}
		moved[f] = p
	}

	for f, p := range moved {
		f.Position = p
	}
	return nil
}

// UpdateContent replaces the field's content. A nil content clears it.
// Content of the wrong variant for the field's kind is rejected.
func (l *FieldList) UpdateContent(id string, c Content) error {
	f := l.find(id)
	if f == nil {
		return nil
	}
	if err := CheckContent(f.Kind, c); err != nil {
		return err
	}
	if c != nil {
		c = c.clone()
	}
	f.Content = c
	return nil
}

// Delete removes the field. Ids are never handed out again.
func (l *FieldList) Delete(id string) {
	for i, f := range l.fields {
		if f.ID == id {
			l.fields = append(l.fields[:i], l.fields[i+1:]...)
			return
		}
	}
}

// Get returns a copy of the field with the given id.
func (l *FieldList) Get(id string) (Field, bool) {
	f := l.find(id)
	if f == nil {
		return Field{}, false
	}
	return f.clone(), true
}

// Len returns the number of fields.
func (l *FieldList) Len() int {
	return len(l.fields)
}

// Snapshot returns deep copies of all fields in insertion order.
func (l *FieldList) Snapshot() []Field {
	out := make([]Field, 0, len(l.fields))
	for _, f := range l.fields {
		out = append(out, f.clone())
	}
	return out
}

func (l *FieldList) find(id string) *Field {
	for _, f := range l.fields {
		if f.ID == id {
			return f
		}
	}
	return nil
}
