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

type SymptomHandler struct {
	store *store.SymptomStore
}

func NewSymptomHandler(st *store.SymptomStore) *SymptomHandler {
	return &SymptomHandler{store: st}
}

func (h *SymptomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s models.Symptom
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.UserID = auth.UserIDFromContext(r.Context())
	if s.Date.IsZero() {
		s.Date = time.Now().UTC()
	}

	if err := h.store.Create(r.Context(), &s); err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to save symptom", err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SymptomHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list symptoms", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"symptoms": list, "count": len(list)})
}

func (h *SymptomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, "symptom not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
