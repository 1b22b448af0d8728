package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/lector/internal/documents"
	"github.com/JaimeStill/lector/internal/session"
	"github.com/JaimeStill/lector/pkg/formatting"
	"github.com/JaimeStill/lector/pkg/handlers"
	"github.com/JaimeStill/lector/pkg/routes"
)

// DocumentsHandler provides HTTP endpoints for loading and clearing the
// session document.
type DocumentsHandler struct {
	session       session.System
	ingest        documents.System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewDocumentsHandler creates a DocumentsHandler from the API domain and runtime.
func NewDocumentsHandler(domain *Domain, runtime *Runtime) *DocumentsHandler {
	return &DocumentsHandler{
		session:       domain.Session,
		ingest:        domain.Documents,
		logger:        runtime.Logger.With("handler", "documents"),
		maxUploadSize: runtime.MaxUploadSize,
	}
}

// Routes returns the route group definition for document endpoints.
func (h *DocumentsHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/documents",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "GET", Pattern: "/current", Handler: h.Current},
			{Method: "DELETE", Pattern: "/current", Handler: h.Delete},
		},
	}
}

// Upload ingests a multipart file upload and installs it as the session
// document. Replacing the document clears the agent registry and any prior
// analysis.
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, documents.ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, documents.ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, documents.ErrInvalidFile)
		return
	}

	doc, err := h.ingest.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
		return
	}

	h.session.SetDocument(doc)
	h.logger.Info(
		"document uploaded",
		"filename", header.Filename,
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

// Current returns the loaded session document.
func (h *DocumentsHandler) Current(w http.ResponseWriter, r *http.Request) {
	doc := h.session.Document()
	if doc == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, documents.ErrNoDocument)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// Delete clears the session: document, agents, and analysis.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	w.WriteHeader(http.StatusNoContent)
}
