package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
)

type profileRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	if profiles == nil {
		profiles = []models.Profile{}
	}

	var current *int64
	if c, err := r.Cookie(profileCookieName); err == nil {
		if id, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
			current = &id
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"profiles": profiles, "current": current})
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("profile created: id=%d", profile.ID)
	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if c, err := r.Cookie(profileCookieName); err == nil && c.Value == strconv.FormatInt(id, 10) {
		clearProfileCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}
