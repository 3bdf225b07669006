package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/storage"
)

const maxImageBytes = 10 << 20

// ImageUploadHandler serves the presigned URLs handed out by a local store
type ImageUploadHandler struct {
	store storage.LocalStore
}

func NewImageUploadHandler(store storage.LocalStore) *ImageUploadHandler {
	return &ImageUploadHandler{store: store}
}

// HandleMockUpload accepts the PUT a client sends to a presigned upload URL.
// The token path segment must be one the store issued for key.
func (h *ImageUploadHandler) HandleMockUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	token := mux.Vars(r)["token"]
	if !h.store.ValidUploadToken(token, key) {
		logger.InfoContext(r.Context(), "Rejected mock upload", "key", key)
		http.Error(w, "Invalid or expired upload token", http.StatusForbidden)
		return
	}

	if contentTypeFor(key) != r.Header.Get("Content-Type") {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveFile(key, io.LimitReader(r.Body, maxImageBytes)); err != nil {
		logger.WarnContext(r.Context(), "Mock upload failed", "key", key, "error", err)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Mimic the S3 response
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

func (h *ImageUploadHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.DebugContext(r.Context(), "Mock download interrupted", "key", key, "error", err)
	}
}

func contentTypeFor(key string) string {
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	}
	return "application/octet-stream"
}

// RegisterMockStorageRoutes registers the mock storage HTTP endpoints
func RegisterMockStorageRoutes(router *mux.Router, store storage.LocalStore) {
	handler := NewImageUploadHandler(store)
	router.HandleFunc("/api/v1/upload/{token}", handler.HandleMockUpload).Methods(http.MethodPut).Name("MockUpload")
	router.HandleFunc("/api/v1/download/{key}", handler.HandleMockDownload).Methods(http.MethodGet).Name("MockDownload")
}
