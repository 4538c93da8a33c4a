package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vytor/pharmaflash/internal/errors"
)

func (s *Server) Routes() http.Handler {
	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// The profile cookie is only shared with origins listed explicitly.
	allowCredentials := !slices.Contains(origins, "*")

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleCreateProfile)
			r.Post("/{id}/select", s.handleSelectProfile)
			r.Delete("/{id}", s.handleDeleteProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.profileMiddleware)

			r.Get("/chapters", s.handleListChapters)
			r.Post("/chapters", s.handleCreateChapter)
			r.Get("/chapters/{id}", s.handleGetChapter)
			r.Put("/chapters/{id}", s.handleRenameChapter)
			r.Delete("/chapters/{id}", s.handleDeleteChapter)
			r.Post("/chapters/{id}/topics", s.handleCreateTopic)

			r.Put("/topics/{id}", s.handleRenameTopic)
			r.Delete("/topics/{id}", s.handleDeleteTopic)
			r.Get("/topics/{id}/flashcard-config", s.handleGetFlashcardConfig)
			r.Put("/topics/{id}/flashcard-config", s.handleSetFlashcardConfig)
			r.Post("/topics/{id}/items", s.handleCreateItem)

			r.Get("/items", s.handleListItems)
			r.Get("/items/{id}", s.handleGetItem)
			r.Put("/items/{id}", s.handleUpdateItem)
			r.Delete("/items/{id}", s.handleDeleteItem)
			r.Post("/items/{id}/autofill", s.handleAutofillItem)
			r.Get("/pubchem/lookup", s.handleLookupCompound)

			r.Post("/quiz", s.handleStartQuiz)
			r.Get("/quiz/{id}", s.handleGetQuiz)
			r.Delete("/quiz/{id}", s.handleAbandonQuiz)
			r.Post("/quiz/{id}/answer", s.handleAnswerQuiz)
			r.Post("/quiz/{id}/next", s.handleNextQuestion)
			r.Post("/quiz/{id}/restart", s.handleRestartQuiz)
			r.Post("/quiz/{id}/new", s.handleNewQuiz)

			r.Post("/flashcards", s.handleStartFlashcards)
			r.Get("/flashcards/{id}", s.handleGetFlashcards)
			r.Delete("/flashcards/{id}", s.handleAbandonFlashcards)
			r.Post("/flashcards/{id}/reveal", s.handleRevealFlashcard)
			r.Post("/flashcards/{id}/mark", s.handleMarkFlashcard)
			r.Post("/flashcards/{id}/retry", s.handleRetryFlashcards)

			r.Get("/stats", s.handleStats)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
		})
	})
	return r
}
