package api

import (
	"net/http"

	"github.com/vytor/pharmaflash/internal/models"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := s.CatalogService.ListChapters(r.Context(), currentProfileID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	writeJSON(w, r, http.StatusOK, chapters)
}

func (s *Server) handleCreateChapter(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	chapter, err := s.CatalogService.CreateChapter(r.Context(), currentProfileID(r), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, chapter)
}

func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	chapter, err := s.CatalogService.GetChapter(r.Context(), currentProfileID(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, chapter)
}

func (s *Server) handleRenameChapter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req nameRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.RenameChapter(r.Context(), currentProfileID(r), id, req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.DeleteChapter(r.Context(), currentProfileID(r), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	chapterID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req nameRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	topic, err := s.CatalogService.CreateTopic(r.Context(), currentProfileID(r), chapterID, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, topic)
}

func (s *Server) handleRenameTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req nameRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.RenameTopic(r.Context(), currentProfileID(r), id, req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.DeleteTopic(r.Context(), currentProfileID(r), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetFlashcardConfig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	cfg, err := s.CatalogService.GetFlashcardConfig(r.Context(), currentProfileID(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) handleSetFlashcardConfig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var cfg models.FlashcardPromptConfig
	if err := decodeJSON(w, r, &cfg, false); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.SetFlashcardConfig(r.Context(), currentProfileID(r), id, &cfg); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cfg)
}
