package handler

import (
	"net/http"

	"pdf-field-editor/internal/domain"
	"pdf-field-editor/internal/service"

	"github.com/gorilla/mux"
)

// FieldHandler handles field requests. Requests naming a field that does not
// exist succeed with 204 and change nothing.
type FieldHandler struct {
	sessions *service.SessionService
	drag     *service.DragAdapter
	logger   domain.Logger
}

// NewFieldHandler creates a new field handler
func NewFieldHandler(sessions *service.SessionService, drag *service.DragAdapter, logger domain.Logger) *FieldHandler {
	return &FieldHandler{
		sessions: sessions,
		drag:     drag,
		logger:   logger,
	}
}

type addFieldRequest struct {
	Kind      string `json:"kind"`
	PageIndex int    `json:"page_index"`
}

type moveFieldRequest struct {
	DeltaX float64 `json:"dx"`
	DeltaY float64 `json:"dy"`
}

type dragRequest struct {
	Events []service.DragEvent `json:"events"`
}

type updateContentRequest struct {
	Content *string `json:"content"`
}

type signRequest struct {
	Label string `json:"label"`
}

// AddField appends a new field at the default position
func (h *FieldHandler) AddField(w http.ResponseWriter, r *http.Request) {
	var req addFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	kind, err := domain.ParseFieldKind(req.Kind)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	field, err := h.sessions.AddField(mux.Vars(r)["id"], kind, req.PageIndex)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, domain.NewFieldView(field))
}

// MoveField applies the final delta of a single drag gesture
func (h *FieldHandler) MoveField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req moveFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	event := service.DragEvent{FieldID: vars["fieldId"], DeltaX: req.DeltaX, DeltaY: req.DeltaY}
	if err := h.drag.Apply(vars["id"], event); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Drag applies a batch of drag-end events atomically
func (h *FieldHandler) Drag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.drag.Apply(mux.Vars(r)["id"], req.Events...); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateContent replaces a field's content; null clears it
func (h *FieldHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req updateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.sessions.UpdateContent(vars["id"], vars["fieldId"], req.Content); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SignField fills a signature field with a rendered placeholder signature
func (h *FieldHandler) SignField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req signRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, h.logger, err)
			return
		}
	}

	if err := h.sessions.Sign(vars["id"], vars["fieldId"], req.Label); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteField removes a field
func (h *FieldHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.sessions.DeleteField(vars["id"], vars["fieldId"]); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
