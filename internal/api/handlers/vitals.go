package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/models"
	"github.com/vitalsync/vitalsync/internal/store"
)

type VitalHandler struct {
	store *store.VitalStore
}

func NewVitalHandler(st *store.VitalStore) *VitalHandler {
	return &VitalHandler{store: st}
}

func (h *VitalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v models.VitalSign
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := v.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v.UserID = auth.UserIDFromContext(r.Context())
	if v.Date.IsZero() {
		v.Date = time.Now().UTC()
	}

	if err := h.store.Create(r.Context(), &v); err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to save vital sign", err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VitalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list vital signs", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vitals": list, "count": len(list)})
}

func (h *VitalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, "vital sign not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
