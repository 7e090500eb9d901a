package http

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"coursefund-backend/internal/service"
	"coursefund-backend/internal/storage"

	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	docSvc service.DocumentService
}

func NewDocumentHandler(docSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docSvc: docSvc}
}

func (h *DocumentHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	var body struct {
		Filename  string `json:"filename"`
		RequestID *int32 `json:"request_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	doc, uploadURL, err := h.docSvc.GetUploadURL(r.Context(), principal, body.Filename, body.RequestID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"document":   doc,
		"upload_url": uploadURL,
	})
}

func (h *DocumentHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid document id"})
		return
	}

	doc, err := h.docSvc.ConfirmUpload(r.Context(), principal, int32(id))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid document id"})
		return
	}

	downloadURL, err := h.docSvc.GetDownloadURL(r.Context(), principal, int32(id))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"download_url": downloadURL})
}

func (h *DocumentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	docs, err := h.docSvc.ListMyDocuments(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: docs, TotalCount: int32(len(docs))})
}

// MockStorageHandler serves the presigned upload/download endpoints the
// mock backend points its URLs at.
type MockStorageHandler struct {
	mockStorage *storage.MockStorageBackend
}

func NewMockStorageHandler(mockStorage *storage.MockStorageBackend) *MockStorageHandler {
	return &MockStorageHandler{mockStorage: mockStorage}
}

func (h *MockStorageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	if err := h.mockStorage.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

func (h *MockStorageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	// Content type comes from the file extension.
	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".pdf":
		contentType = "application/pdf"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".txt":
		contentType = "text/plain"
	}

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, file)
}
