package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	"pdf-field-editor/internal/domain"
)

const (
	// SignatureScale is applied to the intrinsic size of signature images.
	SignatureScale = 0.5
	// TextStampHeight is the height reserved for a text or date stamp when
	// mapping its overlay position to page space.
	TextStampHeight = 20
	TextFontSize    = 12
	TextFontName    = "Helvetica"

	PDFContentType = "application/pdf"
)

var textColor = color.RGBA{A: 0xff}

// SavePipeline flattens the fields of a session into a new PDF.
type SavePipeline struct {
	backend  domain.PDFBackend
	encoder  *TextEncoder
	archive  *ArchiveService
	filename string
	logger   domain.Logger
}

func NewSavePipeline(
	backend domain.PDFBackend,
	encoder *TextEncoder,
	archive *ArchiveService,
	filename string,
	logger domain.Logger,
) *SavePipeline {
	return &SavePipeline{
		backend:  backend,
		encoder:  encoder,
		archive:  archive,
		filename: filename,
		logger:   logger,
	}
}

// Save embeds every filled field into the session's document.
//
// The session is read exactly once; edits made while the save runs are not
// part of the output. A session without a document yields (nil, nil). Any
// decode failure aborts the whole save and leaves the session untouched.
// Archiving runs in the background and never delays the result.
func (p *SavePipeline) Save(ctx context.Context, session *domain.Session) (*domain.SaveResult, error) {
	snap := session.Snapshot()
	if snap.Document == nil {
		p.logger.Debug("Save skipped, no document loaded", "session_id", snap.SessionID)
		return nil, nil
	}

	pages, err := p.backend.PageSizes(ctx, snap.Document.Data)
	if err != nil {
		return nil, err
	}

	stamps, err := p.buildStamps(snap.SessionID, snap.Fields, pages)
	if err != nil {
		return nil, err
	}

	out, err := p.backend.Apply(ctx, snap.Document.Data, stamps)
	if err != nil {
		return nil, err
	}

	result := &domain.SaveResult{
		Data:        out,
		Filename:    p.filename,
		ContentType: PDFContentType,
		FieldsDrawn: len(stamps),
	}
	p.logger.Info("Document saved",
		"session_id", snap.SessionID,
		"fields", len(snap.Fields),
		"fields_drawn", len(stamps),
		"bytes", len(out),
	)

	p.archive.ArchiveInBackground(ctx, snap.SessionID, result)
	return result, nil
}

func (p *SavePipeline) buildStamps(sessionID string, fields []domain.Field, pages []domain.PageSize) ([]domain.Stamp, error) {
	stamps := make([]domain.Stamp, 0, len(fields))
	for _, f := range fields {
		if f.PageIndex < 0 || f.PageIndex >= len(pages) {
			return nil, fmt.Errorf("%w: field %s targets page %d of %d", domain.ErrPageOutOfRange, f.ID, f.PageIndex, len(pages))
		}
		if !f.Filled() {
			continue
		}
		pageHeight := pages[f.PageIndex].Height

		switch c := f.Content.(type) {
		case domain.ImageContent:
			st, err := imageStamp(f, c, pageHeight)
			if err != nil {
				return nil, err
			}
			stamps = append(stamps, st)
		case domain.TextContent:
			text, replaced := p.encoder.Encode(string(c))
			if replaced > 0 {
				p.logger.Warn("Replaced characters the PDF font cannot draw",
					"session_id", sessionID, "field_id", f.ID, "replaced", replaced)
			}
			stamps = append(stamps, domain.Stamp{
				Kind:      domain.StampText,
				PageIndex: f.PageIndex,
				FieldID:   f.ID,
				Origin:    domain.ToPageSpace(f.Position, pageHeight, TextStampHeight),
				Text:      text,
				FontName:  TextFontName,
				FontSize:  TextFontSize,
				Color:     textColor,
			})
		}
	}
	return stamps, nil
}

func imageStamp(f domain.Field, c domain.ImageContent, pageHeight float64) (domain.Stamp, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(c.Data))
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("%w: field %s: %v", domain.ErrImageDecode, f.ID, err)
	}
	if format != "png" {
		return domain.Stamp{}, fmt.Errorf("%w: field %s: expected png, got %s", domain.ErrImageDecode, f.ID, format)
	}

	width := float64(cfg.Width) * SignatureScale
	height := float64(cfg.Height) * SignatureScale
	return domain.Stamp{
		Kind:      domain.StampImage,
		PageIndex: f.PageIndex,
		FieldID:   f.ID,
		Origin:    domain.ToPageSpace(f.Position, pageHeight, height),
		Image:     c.Data,
		Width:     width,
		Height:    height,
		Scale:     SignatureScale,
	}, nil
}
