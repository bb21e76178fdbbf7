package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/models"
	"github.com/vitalsync/vitalsync/internal/store"
)

type ProfileHandler struct {
	store *store.ProfileStore
}

func NewProfileHandler(st *store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{store: st}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	p, err := h.store.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Put creates or replaces the caller's profile. Name and email fall back
// to the token claims so a first save needs no extra fields.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p.UserID = auth.UserIDFromContext(r.Context())
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		if p.Name == "" {
			p.Name = claims.Name
		}
		if p.Email == "" {
			p.Email = claims.Email
		}
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.store.Upsert(r.Context(), &p)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to save profile", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
