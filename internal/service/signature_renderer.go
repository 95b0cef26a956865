package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	signatureWidth     = 200
	signatureHeight    = 100
	signatureFontSize  = 30
	signatureMarginX   = 20
	signatureBaselineY = 50

	// DefaultSignatureLabel is drawn when the client does not supply one.
	DefaultSignatureLabel = "Signature"
)

// SignatureRenderer draws the placeholder signature image produced by the
// "click to sign" action: white text on a black 200x100 canvas.
type SignatureRenderer struct {
	font *opentype.Font
}

func NewSignatureRenderer() (*SignatureRenderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signature font: %w", err)
	}
	return &SignatureRenderer{font: f}, nil
}

// Render returns the PNG encoding of the signature for label.
// Labels too wide for the canvas are drawn with a smaller face.
func (r *SignatureRenderer) Render(label string) ([]byte, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultSignatureLabel
	}

	face, err := r.fitFace(label)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, signatureWidth, signatureHeight))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(signatureMarginX, signatureBaselineY),
	}
	d.DrawString(label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode signature: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *SignatureRenderer) fitFace(label string) (font.Face, error) {
	size := float64(signatureFontSize)
	face, err := r.newFace(size)
	if err != nil {
		return nil, err
	}

	maxWidth := signatureWidth - 2*signatureMarginX
	width := font.MeasureString(face, label).Ceil()
	if width <= maxWidth {
		return face, nil
	}

	face.Close()
	return r.newFace(size * float64(maxWidth) / float64(width))
}

func (r *SignatureRenderer) newFace(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create signature face: %w", err)
	}
	return face, nil
}
