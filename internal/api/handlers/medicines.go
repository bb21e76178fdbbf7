package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vitalsync/vitalsync/internal/advisor"
	"github.com/vitalsync/vitalsync/internal/storage"
)

type MedicineHandler struct {
	identifier *advisor.MedicineIdentifier
	files      storage.FileStore
	maxBytes   int64
}

func NewMedicineHandler(identifier *advisor.MedicineIdentifier, files storage.FileStore, maxBytes int64) *MedicineHandler {
	return &MedicineHandler{identifier: identifier, files: files, maxBytes: maxBytes}
}

// Identify accepts a photo of a medicine label or pill imprint and returns
// the recognized name and usage information.
func (h *MedicineHandler) Identify(w http.ResponseWriter, r *http.Request) {
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
	defer h.files.Delete(saved.FileName)

	info, err := h.identifier.Identify(r.Context(), saved.Path)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to identify medicine", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
