package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = func() time.Time {
	return time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
}

func TestFieldList_Add(t *testing.T) {
	l := NewFieldList(fixedNow, "")

	sig, err := l.Add(FieldKindSignature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	date, err := l.Add(FieldKindDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := l.Add(FieldKindText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Field{
		{ID: "Signature-0", Kind: FieldKindSignature, Position: Point{X: 50, Y: 50}},
		{ID: "Date-1", Kind: FieldKindDate, Position: Point{X: 50, Y: 50}, Content: TextContent("10/19/2026")},
		{ID: "Text-2", Kind: FieldKindText, Position: Point{X: 50, Y: 50}},
	}
	if diff := cmp.Diff(want, l.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[0], sig); diff != "" {
		t.Fatalf("returned signature field mismatch (-want +got):\n%s", diff)
	}
	if date.Content != TextContent("10/19/2026") {
		t.Fatalf("expected date to be pre-filled, got %v", date.Content)
	}
	if text.Filled() {
		t.Fatalf("expected text field to start empty")
	}
}

func TestFieldList_AddUnknownKind(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	if _, err := l.Add(FieldKind("Checkbox")); !errors.Is(err, ErrUnknownFieldKind) {
		t.Fatalf("expected ErrUnknownFieldKind, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty list, got %d fields", l.Len())
	}
}

func TestFieldList_DateFormat(t *testing.T) {
	l := NewFieldList(fixedNow, "2006-01-02")
	f, _ := l.Add(FieldKindDate)
	if f.Content != TextContent("2026-10-19") {
		t.Fatalf("expected 2026-10-19, got %v", f.Content)
	}
}

func TestFieldList_IDsNeverReused(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	first, _ := l.Add(FieldKindDate)
	l.Delete(first.ID)
	second, _ := l.Add(FieldKindDate)

	if first.ID != "Date-0" || second.ID != "Date-1" {
		t.Fatalf("expected Date-0 then Date-1, got %s then %s", first.ID, second.ID)
	}
}

func TestFieldList_Move(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Point
	}{
		{name: "positive delta", dx: 10, dy: 25.5, want: Point{X: 60, Y: 75.5}},
		{name: "negative delta", dx: -20, dy: -5, want: Point{X: 30, Y: 45}},
		// Fields may leave the visible page; nothing is clamped.
		{name: "off canvas", dx: -500, dy: 10000, want: Point{X: -450, Y: 10050}},
		{name: "zero delta", dx: 0, dy: 0, want: Point{X: 50, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewFieldList(fixedNow, "")
			f, _ := l.Add(FieldKindText)
			if err := l.Move(f.ID, tt.dx, tt.dy); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			got, ok := l.Get(f.ID)
			if !ok {
				t.Fatalf("field %s disappeared", f.ID)
			}
			if got.Position != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got.Position)
			}
		})
	}
}

func TestFieldList_MoveRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		deltas []Delta
	}{
		{name: "NaN delta", deltas: []Delta{{DX: math.NaN()}}},
		{name: "infinite delta", deltas: []Delta{{DY: math.Inf(-1)}}},
		{name: "overflowing sum", deltas: []Delta{{DX: math.MaxFloat64}, {DX: math.MaxFloat64}}},
		{name: "valid then overflow", deltas: []Delta{{DX: 5, DY: 5}, {DY: math.MaxFloat64}, {DY: math.MaxFloat64}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewFieldList(fixedNow, "")
			f, _ := l.Add(FieldKindText)
			for i := range tt.deltas {
				tt.deltas[i].ID = f.ID
			}

			if err := l.MoveMany(tt.deltas); !errors.Is(err, ErrInvalidDelta) {
				t.Fatalf("expected ErrInvalidDelta, got %v", err)
			}
			got, _ := l.Get(f.ID)
			if got.Position != DefaultFieldPosition {
				t.Fatalf("expected position unchanged, got %+v", got.Position)
			}
		})
	}
}

func TestFieldList_MoveManyAccumulates(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	a, _ := l.Add(FieldKindText)
	b, _ := l.Add(FieldKindDate)

	err := l.MoveMany([]Delta{
		{ID: a.ID, DX: 10, DY: 10},
		{ID: b.ID, DX: -50},
		{ID: a.ID, DX: 1, DY: 2},
		{ID: "Text-99", DX: math.MaxFloat64},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	gotA, _ := l.Get(a.ID)
	gotB, _ := l.Get(b.ID)
	if gotA.Position != (Point{X: 61, Y: 62}) {
		t.Errorf("expected (61,62), got %+v", gotA.Position)
	}
	if gotB.Position != (Point{X: 0, Y: 50}) {
		t.Errorf("expected (0,50), got %+v", gotB.Position)
	}
}

func TestFieldList_MoveZeroIsBitIdentical(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	f, _ := l.Add(FieldKindText)
	l.Move(f.ID, 0.1, 0.2)
	before, _ := l.Get(f.ID)

	for i := 0; i < 10; i++ {
		l.Move(f.ID, 0, 0)
	}

	after, _ := l.Get(f.ID)
	if math.Float64bits(before.Position.X) != math.Float64bits(after.Position.X) ||
		math.Float64bits(before.Position.Y) != math.Float64bits(after.Position.Y) {
		t.Fatalf("zero move changed position: %+v -> %+v", before.Position, after.Position)
	}
}

func TestFieldList_UpdateContent(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	text, _ := l.Add(FieldKindText)
	sig, _ := l.Add(FieldKindSignature)

	if err := l.UpdateContent(text.ID, TextContent("Hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.UpdateContent(text.ID, TextContent("Hello, world")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := l.Get(text.ID)
	if got.Content != TextContent("Hello, world") {
		t.Fatalf("expected last write to win, got %v", got.Content)
	}

	png := ImageContent{MediaType: MediaTypePNG, Data: []byte{1, 2, 3}}
	if err := l.UpdateContent(sig.ID, png); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The list must not alias the caller's buffer.
	png.Data[0] = 9
	got, _ = l.Get(sig.ID)
	if diff := cmp.Diff(Content(ImageContent{MediaType: MediaTypePNG, Data: []byte{1, 2, 3}}), got.Content); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}

	if err := l.UpdateContent(sig.ID, nil); err != nil {
		t.Fatalf("unexpected error clearing content: %v", err)
	}
	got, _ = l.Get(sig.ID)
	if got.Filled() {
		t.Fatalf("expected content to be cleared")
	}
}

func TestFieldList_UpdateContentMismatch(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	text, _ := l.Add(FieldKindText)
	sig, _ := l.Add(FieldKindSignature)
	_ = l.UpdateContent(text.ID, TextContent("keep"))

	if err := l.UpdateContent(text.ID, ImageContent{MediaType: MediaTypePNG}); !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}
	if err := l.UpdateContent(sig.ID, TextContent("not an image")); !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}

	got, _ := l.Get(text.ID)
	if got.Content != TextContent("keep") {
		t.Fatalf("rejected update changed content to %v", got.Content)
	}
}

func TestFieldList_UnknownIDIsNoOp(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	_, _ = l.Add(FieldKindText)
	_, _ = l.Add(FieldKindDate)
	before := l.Snapshot()

	l.Move("Text-99", 10, 10)
	if err := l.UpdateContent("Text-99", TextContent("x")); err != nil {
		t.Fatalf("expected no error for unknown id, got %v", err)
	}
	l.Delete("Text-99")

	if diff := cmp.Diff(before, l.Snapshot()); diff != "" {
		t.Fatalf("unknown id changed the list (-want +got):\n%s", diff)
	}
}

func TestFieldList_LengthIsAddsMinusDeletes(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	var ids []string
	for _, k := range []FieldKind{FieldKindText, FieldKindDate, FieldKindSignature, FieldKindText, FieldKindDate} {
		f, err := l.Add(k)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, f.ID)
	}
	l.Delete(ids[1])
	l.Delete(ids[3])
	// Deleting twice counts once.
	l.Delete(ids[3])

	if l.Len() != 3 {
		t.Fatalf("expected 3 fields, got %d", l.Len())
	}
	var got []string
	for _, f := range l.Snapshot() {
		got = append(got, f.ID)
	}
	want := []string{"Text-0", "Signature-2", "Date-4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldList_SnapshotIsIsolated(t *testing.T) {
	l := NewFieldList(fixedNow, "")
	f, _ := l.Add(FieldKindText)
	snap := l.Snapshot()

	l.Move(f.ID, 5, 5)
	_ = l.UpdateContent(f.ID, TextContent("later"))

	if snap[0].Position != DefaultFieldPosition || snap[0].Filled() {
		t.Fatalf("snapshot observed a later mutation: %+v", snap[0])
	}
}

func TestFieldList_AddOnPage(t *testing.T) {
	l := NewFieldList(fixedNow, "")

	f, err := l.AddOnPage(FieldKindSignature, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.PageIndex != 2 {
		t.Fatalf("expected page 2, got %d", f.PageIndex)
	}

	var vErr *ValidationError
	if _, err := l.AddOnPage(FieldKindText, -1); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative page, got %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("expected rejected add to leave 1 field, got %d", l.Len())
	}
}
