package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// TextEncoder prepares field text for the PDF core fonts, which only cover
// WinAnsi (Windows-1252). Text is NFC-normalized first so that decomposed
// accents still map onto single WinAnsi code points.
type TextEncoder struct {
	replacement rune
}

func NewTextEncoder() *TextEncoder {
	return &TextEncoder{replacement: '?'}
}

// Encode returns s restricted to runes the core fonts can draw and the number
// of runes that had to be replaced. Control characters, including line
// breaks, become spaces.
func (e *TextEncoder) Encode(s string) (string, int) {
	s = norm.NFC.String(s)

	var (
		b        strings.Builder
		replaced int
	)
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			b.WriteRune(' ')
		case encodable(r):
			b.WriteRune(r)
		default:
			b.WriteRune(e.replacement)
			replaced++
		}
	}
	return b.String(), replaced
}

func encodable(r rune) bool {
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}
