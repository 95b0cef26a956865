package service

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"sort"
	"sync"

	"pdf-field-editor/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var disableConfigDir sync.Once

// PDFCPUStamper implements domain.PDFBackend with pdfcpu stamps.
// Every call decodes the input from scratch; the caller's bytes are never
// modified.
type PDFCPUStamper struct {
	logger domain.Logger
}

// NewPDFCPUStamper creates a stamper. pdfcpu's on-disk configuration
// directory is disabled; only the built-in core fonts are used.
func NewPDFCPUStamper(logger domain.Logger) *PDFCPUStamper {
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFCPUStamper{logger: logger}
}

func newPDFCPUConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageSizes returns the size of every page in points.
func (s *PDFCPUStamper) PageSizes(ctx context.Context, pdf []byte) ([]domain.PageSize, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dims, err := api.PageDims(bytes.NewReader(pdf), newPDFCPUConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentDecode, err)
	}

	sizes := make([]domain.PageSize, 0, len(dims))
	for _, d := range dims {
		sizes = append(sizes, domain.PageSize{Width: d.Width, Height: d.Height})
	}
	return sizes, nil
}

// Apply draws the stamps in order and returns the rewritten document.
// Without stamps the input is returned unchanged.
func (s *PDFCPUStamper) Apply(ctx context.Context, pdf []byte, stamps []domain.Stamp) ([]byte, error) {
	if len(stamps) == 0 {
		out := make([]byte, len(pdf))
		copy(out, pdf)
		return out, nil
	}

	byPage := make(map[int][]*model.Watermark)
	for _, st := range stamps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wm, err := s.watermark(st)
		if err != nil {
			return nil, err
		}
		// pdfcpu numbers pages from 1.
		pageNr := st.PageIndex + 1
		byPage[pageNr] = append(byPage[pageNr], wm)
	}

	var out bytes.Buffer
	if err := api.AddWatermarksSliceMap(bytes.NewReader(pdf), &out, byPage, newPDFCPUConfig()); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentDecode, err)
	}

	s.logger.Debug("Stamps applied", "stamps", len(stamps), "pages", sortedPages(byPage), "bytes", out.Len())
	return out.Bytes(), nil
}

func (s *PDFCPUStamper) watermark(st domain.Stamp) (*model.Watermark, error) {
	var (
		wm  *model.Watermark
		err error
	)

	switch st.Kind {
	case domain.StampImage:
		// pdfcpu decodes lazily; fail here rather than halfway through the write.
		if _, err := png.Decode(bytes.NewReader(st.Image)); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", domain.ErrImageDecode, st.FieldID, err)
		}
		desc := fmt.Sprintf("scalefactor:%g abs, position:bl, rotation:0, opacity:1", st.Scale)
		wm, err = api.ImageWatermarkForReader(bytes.NewReader(st.Image), desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", domain.ErrImageDecode, st.FieldID, err)
		}
	case domain.StampText:
		desc := fmt.Sprintf("fontname:%s, points:%d, scalefactor:1 abs, position:bl, rotation:0, fillcolor:%s, opacity:1",
			st.FontName, int(st.FontSize), hexColor(st.Color))
		wm, err = api.TextWatermark(st.Text, desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("field %s: text stamp: %w", st.FieldID, err)
		}
	default:
		return nil, fmt.Errorf("field %s: unknown stamp kind %d", st.FieldID, st.Kind)
	}

	// Anchored bottom-left, the offset is the page-space origin.
	wm.Dx = st.Origin.X
	wm.Dy = st.Origin.Y
	if st.Kind == domain.StampText {
		wm.Dy -= textBaselineOffset(st.FontName, st.FontSize)
	}
	return wm, nil
}

// textBaselineOffset is how far above the bottom of its box pdfcpu sets the
// first baseline of a text watermark.
func textBaselineOffset(fontName string, fontSize float64) float64 {
	return math.Ceil(font.Descent(fontName, int(fontSize)))
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func sortedPages(m map[int][]*model.Watermark) []int {
	pages := make([]int, 0, len(m))
	for p := range m {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
