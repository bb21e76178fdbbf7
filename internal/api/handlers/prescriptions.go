package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/prescription"
	"github.com/vitalsync/vitalsync/internal/storage"
	"github.com/vitalsync/vitalsync/internal/store"
)

// Digitizer runs one prescription image through the pipeline. Narrowed to
// an interface so handler tests use a deterministic fake.
type Digitizer interface {
	Run(ctx context.Context, in prescription.RunInput) (*prescription.RunResult, error)
}

type PrescriptionHandler struct {
	pipeline Digitizer
	files    storage.FileStore
	store    *store.PrescriptionStore
	maxBytes int64
}

func NewPrescriptionHandler(pipeline Digitizer, files storage.FileStore, st *store.PrescriptionStore, maxBytes int64) *PrescriptionHandler {
	return &PrescriptionHandler{pipeline: pipeline, files: files, store: st, maxBytes: maxBytes}
}

// uploadResponse is the digitization contract: the raw OCR text plus the
// structured (or best-effort) prescription lines. Both fields are always
// present, possibly empty.
type uploadResponse struct {
	OriginalText        string   `json:"originalText"`
	DigitalPrescription []string `json:"digitalPrescription"`
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func (h *PrescriptionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no image uploaded")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "image exceeds size limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		writeError(w, http.StatusBadRequest, "unsupported image type, expected JPEG or PNG")
		return
	}

	saved, err := h.files.Save(header.Filename, file)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to store upload", err)
		return
	}

	result, err := h.pipeline.Run(r.Context(), prescription.RunInput{
		UserID:    auth.UserIDFromContext(r.Context()),
		ImagePath: saved.Path,
		ImageURL:  h.files.PublicPath(saved.FileName),
	})
	if err != nil {
		var preErr *prescription.PreprocessError
		var ocrErr *prescription.OCRError
		switch {
		case errors.As(err, &preErr):
			writeErrorDetails(w, http.StatusBadRequest, "could not read the uploaded image", err)
		case errors.As(err, &ocrErr):
			writeErrorDetails(w, http.StatusBadGateway, "text extraction failed", err)
		default:
			writeErrorDetails(w, http.StatusInternalServerError, "failed to process prescription", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		OriginalText:        result.OriginalText,
		DigitalPrescription: result.Medicines,
	})
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	p, err := h.store.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "prescription not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	list, err := h.store.ListByUser(r.Context(), userID, limit)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list prescriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"prescriptions": list, "count": len(list)})
}
