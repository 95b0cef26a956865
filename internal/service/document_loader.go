package service

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"pdf-field-editor/internal/domain"
)

// DocumentLoader turns an upload into a domain.Document. Only PDFs are
// accepted; the bytes are not parsed until the document is saved.
type DocumentLoader struct {
	maxSize int64
	now     func() time.Time
}

func NewDocumentLoader(maxSize int64) *DocumentLoader {
	return &DocumentLoader{maxSize: maxSize, now: time.Now}
}

// Load reads r and validates the declared content type. An empty or generic
// declared type falls back to sniffing the bytes.
func (l *DocumentLoader) Load(r io.Reader, name, declaredType string) (*domain.Document, error) {
	limited := io.LimitReader(r, l.maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, &domain.ValidationError{Field: "file", Message: fmt.Sprintf("file exceeds %d bytes", l.maxSize)}
	}
	if !isPDF(declaredType, data) {
		return nil, fmt.Errorf("%w: %q is not a PDF", domain.ErrInvalidFile, name)
	}

	if name == "" {
		name = "document.pdf"
	}
	return &domain.Document{
		Name:     name,
		Size:     int64(len(data)),
		LoadedAt: l.now().UTC(),
		Data:     data,
	}, nil
}

func isPDF(declaredType string, data []byte) bool {
	mediaType, _, err := mime.ParseMediaType(declaredType)
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case PDFContentType:
		return true
	case "", "application/octet-stream":
		return bytes.HasPrefix(data, []byte("%PDF-")) &&
			http.DetectContentType(data) == PDFContentType
	}
	return false
}
