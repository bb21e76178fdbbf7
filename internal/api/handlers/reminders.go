package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/models"
	"github.com/vitalsync/vitalsync/internal/store"
)

type ReminderHandler struct {
	store *store.ReminderStore
}

func NewReminderHandler(st *store.ReminderStore) *ReminderHandler {
	return &ReminderHandler{store: st}
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rem models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := rem.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rem.UserID = auth.UserIDFromContext(r.Context())
	rem.Notified = false

	if err := h.store.Create(r.Context(), &rem); err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to save reminder", err)
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list reminders", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reminders": list, "count": len(list)})
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
