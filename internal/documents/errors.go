package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document ingestion.
var (
	ErrNoDocument      = errors.New("no document loaded")
	ErrInvalidFile     = errors.New("invalid file")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrRenderFailed    = errors.New("failed to render PDF pages")
)

// MapHTTPStatus maps document domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoDocument) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrUnsupportedFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
