package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/pharmaflash/internal/errors"
)

type scopeRequest struct {
	ChapterID int64 `json:"chapter_id"`
}

type answerRequest struct {
	Option *int `json:"option"`
}

type markRequest struct {
	Correct *bool `json:"correct"`
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req scopeRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	view, err := s.QuizService.Start(r.Context(), currentProfileID(r), req.ChapterID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.Get(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAbandonQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Abandon(r.Context(), currentProfileID(r), sessionID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Option == nil {
		handleError(w, r, errors.NewValidationError("option", "is required"))
		return
	}
	view, err := s.QuizService.Answer(r.Context(), currentProfileID(r), sessionID(r), *req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.Next(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleRestartQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.Restart(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleNewQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.New(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleStartFlashcards(w http.ResponseWriter, r *http.Request) {
	var req scopeRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	view, err := s.FlashcardService.Start(r.Context(), currentProfileID(r), req.ChapterID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetFlashcards(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Get(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAbandonFlashcards(w http.ResponseWriter, r *http.Request) {
	if err := s.FlashcardService.Abandon(r.Context(), currentProfileID(r), sessionID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevealFlashcard(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Reveal(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleMarkFlashcard(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Correct == nil {
		handleError(w, r, errors.NewValidationError("correct", "is required"))
		return
	}
	view, err := s.FlashcardService.Mark(r.Context(), currentProfileID(r), sessionID(r), *req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleRetryFlashcards(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Retry(r.Context(), currentProfileID(r), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.GetStats(r.Context(), currentProfileID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
