package domain

import (
	"image/color"
	"time"
)

// Document is the source PDF loaded into an editing session. Data holds the
// bytes exactly as uploaded; saving never modifies them.
type Document struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	LoadedAt time.Time `json:"loaded_at"`
	Data     []byte    `json:"-"`
}

// PageSize is the width and height of a page in PDF points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StampKind distinguishes the drawing operations of a Stamp.
type StampKind int

const (
	StampImage StampKind = iota
	StampText
)

// Stamp is one drawing operation in page space. Origin is the lower-left
// corner of an image, or the baseline start of a text line.
type Stamp struct {
	Kind      StampKind
	PageIndex int
	FieldID   string
	Origin    Point

	// image stamps
	Image  []byte
	Width  float64
	Height float64
	Scale  float64

	// text stamps
	Text     string
	FontName string
	FontSize float64
	Color    color.RGBA
}

// SaveResult is the output of one save invocation.
type SaveResult struct {
	Data        []byte `json:"-"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	FieldsDrawn int    `json:"fields_drawn"`
}
