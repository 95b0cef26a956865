package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidFile      = errors.New("invalid file")
	ErrUnknownFieldKind = errors.New("unknown field kind")
	ErrContentMismatch  = errors.New("content does not match field kind")
	ErrInvalidContent   = errors.New("invalid field content")
	ErrInvalidDelta     = errors.New("invalid position delta")
	ErrDocumentDecode   = errors.New("failed to decode document")
	ErrImageDecode      = errors.New("failed to decode signature image")
	ErrPageOutOfRange   = errors.New("page index out of range")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
