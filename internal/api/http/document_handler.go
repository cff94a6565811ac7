package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/storage"
)

// documentURLTTL bounds how long an issued upload or download URL is meant
// to be used. The local store does not enforce it; a cloud backend would.
const documentURLTTL = 15 * time.Minute

// DocumentHandler serves receipt justification files (payment proofs,
// insurance correspondence) through the local document store.
type DocumentHandler struct {
	store storage.DocumentStore
}

func NewDocumentHandler(store storage.DocumentStore) *DocumentHandler {
	return &DocumentHandler{store: store}
}

type createDocumentURLRequest struct {
	Entity   string `json:"entity"`
	EntityID int32  `json:"entity_id"`
	Filename string `json:"filename"`
}

type documentURLDTO struct {
	Key         string `json:"key"`
	UploadURL   string `json:"upload_url"`
	DownloadURL string `json:"download_url"`
}

// contentTypeForName maps a document filename to its content type. Only
// pdf, jpeg and png attachments are accepted.
func contentTypeForName(name string) string {
	switch filepath.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return ""
}

// HandleCreateUploadURL issues an upload/download URL pair for a document
// attached to a ledger entity. The client PUTs the file to the upload URL.
func (h *DocumentHandler) HandleCreateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req createDocumentURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	switch req.Entity {
	case "installments", "expenses", "claims":
	default:
		writeError(w, &domain.ValidationError{Field: "entity", Reason: "expected installments, expenses or claims"})
		return
	}
	if req.EntityID <= 0 {
		writeError(w, &domain.ValidationError{Field: "entity_id", Reason: "must be a positive integer"})
		return
	}
	if req.Filename == "" || req.Filename != filepath.Base(req.Filename) || strings.Contains(req.Filename, "..") {
		writeError(w, &domain.ValidationError{Field: "filename", Reason: "must be a bare file name"})
		return
	}
	contentType := contentTypeForName(req.Filename)
	if contentType == "" {
		writeError(w, &domain.ValidationError{Field: "filename", Reason: "expected a pdf, jpeg or png extension"})
		return
	}

	key := fmt.Sprintf("%s/%d/%s", req.Entity, req.EntityID, req.Filename)
	uploadURL, err := h.store.GenerateUploadURL(r.Context(), key, contentType, documentURLTTL)
	if err != nil {
		http.Error(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}
	downloadURL, err := h.store.GenerateDownloadURL(r.Context(), key, documentURLTTL)
	if err != nil {
		http.Error(w, "Failed to generate download URL", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, documentURLDTO{
		Key:         key,
		UploadURL:   uploadURL,
		DownloadURL: downloadURL,
	})
}

// documentKey extracts and validates the key query parameter. Keys come
// from issued URLs and must never escape the documents directory.
func documentKey(r *http.Request) (string, bool) {
	key := r.URL.Query().Get("key")
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", false
	}
	return key, true
}

// HandleUpload accepts a PUT to a generated upload URL.
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key, ok := documentKey(r)
	if !ok {
		http.Error(w, "Missing or invalid key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "application/pdf" && contentType != "image/jpeg" && contentType != "image/png" {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveDocument(key, r.Body); err != nil {
		http.Error(w, "Failed to save document", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams a stored document back to the client.
func (h *DocumentHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key, ok := documentKey(r)
	if !ok {
		http.Error(w, "Missing or invalid key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.OpenDocument(key)
	if err != nil {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := contentTypeForName(key)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}

// HandleDelete removes a stored document once its parent record is voided.
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	key, ok := documentKey(r)
	if !ok {
		http.Error(w, "Missing or invalid key parameter", http.StatusBadRequest)
		return
	}

	exists, _, err := h.store.DocumentExists(r.Context(), key)
	if err != nil {
		http.Error(w, "Failed to check document", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	if err := h.store.DeleteDocument(r.Context(), key); err != nil {
		http.Error(w, "Failed to delete document", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterDocumentRoutes registers the document storage HTTP endpoints
func RegisterDocumentRoutes(router *mux.Router, store storage.DocumentStore) {
	handler := NewDocumentHandler(store)
	router.HandleFunc("/api/v1/documents", handler.HandleCreateUploadURL).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/documents", handler.HandleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/documents/upload/{token}", handler.HandleUpload).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/documents/download/{key}", handler.HandleDownload).Methods(http.MethodGet)
}
