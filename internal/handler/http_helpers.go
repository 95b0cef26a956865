package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pdf-field-editor/internal/domain"
	apperrors "pdf-field-editor/pkg/errors"
)

const invalidFileMessage = "Please select a valid PDF file."

// writeJSON writes data as a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// respondError maps err to its HTTP status and writes it. Server-side
// failures are logged; client errors only at debug level.
func respondError(w http.ResponseWriter, logger domain.Logger, err error) {
	appErr := toAppError(err)
	status := apperrors.GetStatusCode(appErr)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err)
	} else {
		logger.Debug("Request rejected", "status", status, "error", err.Error())
	}

	body := map[string]string{
		"error": appErr.Message,
		"type":  string(appErr.Type),
	}
	if appErr.Details != "" {
		body["details"] = appErr.Details
	}
	writeJSON(w, status, body)
}

func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.NewNotFoundError("Session not found")
	case errors.Is(err, domain.ErrInvalidFile):
		return apperrors.NewUnsupportedMediaError(invalidFileMessage, err)
	case errors.As(err, &vErr):
		return apperrors.NewValidationError(vErr.Error())
	case errors.Is(err, domain.ErrUnknownFieldKind),
		errors.Is(err, domain.ErrContentMismatch),
		errors.Is(err, domain.ErrInvalidContent),
		errors.Is(err, domain.ErrInvalidDelta):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, domain.ErrPageOutOfRange):
		e := apperrors.NewProcessingError("A field is placed on a page the document does not have", err)
		e.Details = err.Error()
		return e
	case errors.Is(err, domain.ErrDocumentDecode),
		errors.Is(err, domain.ErrImageDecode):
		return apperrors.NewProcessingError("The document could not be saved", err)
	}
	return apperrors.NewInternalError("Internal server error", err)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.NewValidationError("Invalid request body", err.Error())
	}
	return nil
}
