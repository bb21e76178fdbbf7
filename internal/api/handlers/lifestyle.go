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

// LifestyleHandler serves the activity and sleep logs. The two share a
// handler because clients treat them as one "lifestyle" surface.
type LifestyleHandler struct {
	activity *store.ActivityStore
	sleep    *store.SleepStore
}

func NewLifestyleHandler(activity *store.ActivityStore, sleep *store.SleepStore) *LifestyleHandler {
	return &LifestyleHandler{activity: activity, sleep: sleep}
}

func (h *LifestyleHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var a models.Activity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.UserID = auth.UserIDFromContext(r.Context())
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}

	if err := h.activity.Create(r.Context(), &a); err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to save activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *LifestyleHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.activity.ListByUser(r.Context(), userID)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list activity", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"activity": list, "count": len(list)})
}

func (h *LifestyleHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.activity.Delete(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, "activity entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LifestyleHandler) CreateSleep(w http.ResponseWriter, r *http.Request) {
	var s models.Sleep
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

	if err := h.sleep.Create(r.Context(), &s); err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to save sleep entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *LifestyleHandler) ListSleep(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	list, err := h.sleep.ListByUser(r.Context(), userID)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to list sleep entries", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sleep": list, "count": len(list)})
}

func (h *LifestyleHandler) DeleteSleep(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.sleep.Delete(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, "sleep entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
