package domain

import (
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// MediaTypePNG is the only image type a signature field accepts.
const MediaTypePNG = "image/png"

// Content is the payload of a field. The concrete type depends on the
// field kind: ImageContent for signatures, TextContent for text and dates.
type Content interface {
	kind() contentKind
	clone() Content
}

type contentKind int

const (
	contentImage contentKind = iota
	contentText
)

// ImageContent is an encoded image. The bytes are opaque to the field
// model; they are only decoded when the document is saved.
type ImageContent struct {
	MediaType string
	Data      []byte
}

func (ImageContent) kind() contentKind { return contentImage }

func (c ImageContent) clone() Content {
	data := make([]byte, len(c.Data))
	copy(data, c.Data)
	return ImageContent{MediaType: c.MediaType, Data: data}
}

// DataURI renders the image as a base64 data URI.
func (c ImageContent) DataURI() string {
	return dataurl.New(c.Data, c.MediaType).String()
}

// TextContent is the string drawn by text and date fields.
type TextContent string

func (TextContent) kind() contentKind { return contentText }

func (c TextContent) clone() Content { return c }

// CheckContent verifies that c is the variant kind k carries.
// A nil content is valid for every kind.
func CheckContent(k FieldKind, c Content) error {
	if c == nil {
		return nil
	}
	want := contentText
	if k == FieldKindSignature {
		want = contentImage
	}
	if c.kind() != want {
		return fmt.Errorf("%w: %s field cannot hold %T", ErrContentMismatch, k, c)
	}
	return nil
}

// ParseContent converts a wire value into the content variant for kind k.
// Signature payloads must be image/png data URIs; the image bytes are not
// inspected here.
func ParseContent(k FieldKind, raw *string) (Content, error) {
	if raw == nil {
		return nil, nil
	}
	if k != FieldKindSignature {
		return TextContent(*raw), nil
	}

	if !strings.HasPrefix(*raw, "data:") {
		return nil, fmt.Errorf("%w: signature content must be a data URI", ErrInvalidContent)
	}
	du, err := dataurl.DecodeString(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if mt := du.MediaType.ContentType(); mt != MediaTypePNG {
		return nil, fmt.Errorf("%w: signature must be %s, got %s", ErrInvalidContent, MediaTypePNG, mt)
	}
	return ImageContent{MediaType: MediaTypePNG, Data: du.Data}, nil
}
