package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"otoran/internal/logger"
	"otoran/internal/service"

	"github.com/gorilla/mux"
)

// DocumentService interface for markdown pages
type DocumentService interface {
	GetDocument(ctx context.Context, name string) (*service.RenderResult, error)
	ListDocuments(ctx context.Context) ([]service.DocumentInfo, error)
}

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	docService DocumentService
	templates  *template.Template
	logger     *logger.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService DocumentService, templates *template.Template, log *logger.Logger) *DocumentHandler {
	log.Info("Document handler initialized")
	return &DocumentHandler{
		docService: docService,
		templates:  templates,
		logger:     log,
	}
}

// RegisterRoutes registers document-related routes
func (h *DocumentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/docs/{name}", h.ServeDocument).Methods("GET")
	router.HandleFunc("/docs/", h.ListDocuments).Methods("GET")
}

// ServeDocument renders and serves a document
func (h *DocumentHandler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	name := mux.Vars(r)["name"]

	result, err := h.docService.GetDocument(r.Context(), name)
	if err != nil {
		var notFound service.ErrDocumentNotFound
		if errors.As(err, &notFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		log.Error("Failed to render document %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Title       string
		Description string
		Content     template.HTML
	}{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		Content:     template.HTML(result.HTML),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "document.html", data); err != nil {
		log.Error("Failed to execute document template: %v", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// ListDocuments returns a list of available documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListDocuments(r.Context())
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("Failed to list documents: %v", err)
		http.Error(w, "Failed to list documents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"documents": docs,
	})
}
