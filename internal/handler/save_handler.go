package handler

import (
	"mime"
	"net/http"
	"strconv"

	"pdf-field-editor/internal/domain"
	"pdf-field-editor/internal/service"

	"github.com/gorilla/mux"
)

// SaveHandler flattens a session's fields into its document
type SaveHandler struct {
	sessions *service.SessionService
	pipeline *service.SavePipeline
	logger   domain.Logger
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(sessions *service.SessionService, pipeline *service.SavePipeline, logger domain.Logger) *SaveHandler {
	return &SaveHandler{
		sessions: sessions,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Save responds with the edited PDF as a download, or 204 when the session
// has no document loaded.
func (h *SaveHandler) Save(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	result, err := h.pipeline.Save(r.Context(), session)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("X-Fields-Drawn", strconv.Itoa(result.FieldsDrawn))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
