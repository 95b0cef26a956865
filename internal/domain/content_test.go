package domain

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseContent(t *testing.T) {
	tests := []struct {
		name    string
		kind    FieldKind
		raw     *string
		want    Content
		wantErr error
	}{
		{name: "nil clears", kind: FieldKindText, raw: nil, want: nil},
		{name: "text", kind: FieldKindText, raw: strPtr("Hello"), want: TextContent("Hello")},
		{name: "date", kind: FieldKindDate, raw: strPtr("1/2/2026"), want: TextContent("1/2/2026")},
		{
			name: "png data uri",
			kind: FieldKindSignature,
			raw:  strPtr("data:image/png;base64,AQID"),
			want: ImageContent{MediaType: MediaTypePNG, Data: []byte{1, 2, 3}},
		},
		{name: "plain string for signature", kind: FieldKindSignature, raw: strPtr("Signature"), wantErr: ErrInvalidContent},
		{name: "jpeg data uri", kind: FieldKindSignature, raw: strPtr("data:image/jpeg;base64,AQID"), wantErr: ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContent(tt.kind, tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch want := tt.want.(type) {
			case nil:
				if got != nil {
					t.Fatalf("expected nil content, got %v", got)
				}
			case ImageContent:
				img, ok := got.(ImageContent)
				if !ok || img.MediaType != want.MediaType || string(img.Data) != string(want.Data) {
					t.Fatalf("expected %+v, got %+v", want, got)
				}
			default:
				if got != tt.want {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestImageContent_DataURIRoundTrip(t *testing.T) {
	in := ImageContent{MediaType: MediaTypePNG, Data: []byte("\x89PNG")}
	uri := in.DataURI()

	out, err := ParseContent(FieldKindSignature, &uri)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.(ImageContent).Data) != string(in.Data) {
		t.Fatalf("round trip changed data: %q", out.(ImageContent).Data)
	}
}

func TestParseFieldKind(t *testing.T) {
	for in, want := range map[string]FieldKind{
		"Signature": FieldKindSignature,
		"signature": FieldKindSignature,
		" text ":    FieldKindText,
		"DATE":      FieldKindDate,
	} {
		got, err := ParseFieldKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseFieldKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFieldKind("stamp"); !errors.Is(err, ErrUnknownFieldKind) {
		t.Fatalf("expected ErrUnknownFieldKind, got %v", err)
	}
}
