// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"pdf-field-editor/internal/domain"
	"pdf-field-editor/internal/service"

	"github.com/gorilla/mux"
)

// multipartOverhead is allowed on top of the document size limit for form
// boundaries and headers.
const multipartOverhead = 1 << 20

// SessionHandler handles session and document requests
type SessionHandler struct {
	sessions *service.SessionService
	loader   *service.DocumentLoader
	maxBody  int64
	logger   domain.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, loader *service.DocumentLoader, maxFileSize int64, logger domain.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		loader:   loader,
		maxBody:  maxFileSize + multipartOverhead,
		logger:   logger,
	}
}

// CreateSession starts a session. A document may be uploaded right away.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	doc, err := h.readDocument(w, r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	session, err := h.sessions.Create(doc)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, session.View())
}

// GetSession returns the document info and fields of a session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// DeleteSession discards a session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Discard(mux.Vars(r)["id"]); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadDocument loads or replaces the session's document. An invalid upload
// leaves the session as it was.
func (h *SessionHandler) LoadDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.readDocument(w, r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if doc == nil {
		respondError(w, h.logger, &domain.ValidationError{Field: "file", Message: "is required"})
		return
	}

	if err := h.sessions.LoadDocument(id, doc); err != nil {
		respondError(w, h.logger, err)
		return
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// GetDocument serves the loaded document unchanged, for the viewer
func (h *SessionHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	doc := session.Snapshot().Document
	if doc == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", service.PDFContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": doc.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

// readDocument accepts either a multipart form with a "file" part or the raw
// document as the request body. No upload yields (nil, nil).
func (h *SessionHandler) readDocument(w http.ResponseWriter, r *http.Request) (*domain.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		file, header, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, uploadError(err)
		}
		defer file.Close()
		return h.loader.Load(file, sanitizeFilename(header.Filename), header.Header.Get("Content-Type"))
	case r.ContentLength == 0:
		return nil, nil
	default:
		doc, err := h.loader.Load(r.Body, sanitizeFilename(r.URL.Query().Get("name")), r.Header.Get("Content-Type"))
		if err != nil {
			return nil, uploadError(err)
		}
		return doc, nil
	}
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &domain.ValidationError{Field: "file", Message: fmt.Sprintf("request exceeds %d bytes", tooLarge.Limit)}
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) || errors.Is(err, domain.ErrInvalidFile) {
		return err
	}
	return &domain.ValidationError{Field: "file", Message: "could not be read"}
}

// sanitizeFilename strips any path components from a client file name.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
