package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(userMiddleware)

		r.Route("/study/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/{id}", s.handleSessionSnapshot)
			r.Post("/{id}/flip", s.handleFlip)
			r.Post("/{id}/answer", s.handleAnswer)
			r.Post("/{id}/exit", s.handleExit)
			r.Get("/{id}/summary", s.handleSummary)
		})

		r.Get("/progress", s.handleListProgress)
		r.Get("/progress/{flashcardID}", s.handleGetProgress)

		r.Get("/books", s.handleListBooks)
		r.Post("/books", s.handleCreateBook)
		r.Get("/books/{id}/sections", s.handleListSections)
		r.Get("/books/{id}/flashcards", s.handleListBookFlashcards)
		r.Post("/sections", s.handleCreateSection)
		r.Get("/sections/{id}/flashcards", s.handleListSectionFlashcards)
		r.Post("/flashcards", s.handleCreateFlashcard)
	})

	return r
}
