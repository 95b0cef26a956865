package domain

import (
	"fmt"
	"math"
	"strings"
)

// FieldKind identifies what a field draws when the document is saved.
type FieldKind string

const (
	FieldKindSignature FieldKind = "Signature"
	FieldKindText      FieldKind = "Text"
	FieldKindDate      FieldKind = "Date"
)

// ParseFieldKind accepts the canonical kind names case-insensitively.
func ParseFieldKind(s string) (FieldKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signature":
		return FieldKindSignature, nil
	case "text":
		return FieldKindText, nil
	case "date":
		return FieldKindDate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFieldKind, s)
}

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindSignature, FieldKindText, FieldKindDate:
		return true
	}
	return false
}

// Point is a position in either overlay or page space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// DefaultFieldPosition is where new fields appear in overlay space.
var DefaultFieldPosition = Point{X: 50, Y: 50}

// Field is one annotation placed on the document overlay.
//
// Position is kept in overlay space (top-left origin, y down). A nil
// Content means the field has not been filled in yet.
type Field struct {
	ID        string    `json:"id"`
	Kind      FieldKind `json:"kind"`
	Position  Point     `json:"position"`
	Content   Content   `json:"-"`
	PageIndex int       `json:"page_index"`
}

// Filled reports whether the field carries content worth drawing. An empty
// string or an empty image counts as not filled.
func (f *Field) Filled() bool {
	switch c := f.Content.(type) {
	case TextContent:
		return c != ""
	case ImageContent:
		return len(c.Data) > 0
	}
	return false
}

// clone returns a copy that shares no mutable state with f.
func (f *Field) clone() Field {
	c := *f
	if f.Content != nil {
		c.Content = f.Content.clone()
	}
	return c
}
