package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/document"
)

type DocumentHandler struct {
	svc      *document.Service
	maxBytes int64
}

func NewDocumentHandler(svc *document.Service, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{svc: svc, maxBytes: maxBytes}
}

// Upload stores a health document (lab report, scan, referral). Text-bearing
// formats are queued for extraction in the background.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds size limit")
		return
	}

	req := document.UploadRequest{
		UserID:       auth.UserIDFromContext(r.Context()),
		OriginalName: header.Filename,
		Title:        r.FormValue("title"),
		DocumentType: r.FormValue("document_type"),
		MimeType:     header.Header.Get("Content-Type"),
		Data:         file,
	}
	if raw := r.FormValue("document_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			req.DocumentDate = &t
		}
	}

	doc, err := h.svc.Upload(r.Context(), req)
	if err != nil {
		writeErrorDetails(w, http.StatusBadRequest, "failed to upload document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": list, "count": len(list)})
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
