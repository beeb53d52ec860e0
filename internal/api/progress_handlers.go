package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashstudy/internal/errors"
	"github.com/vytor/flashstudy/internal/models"
)

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	filter := models.ProgressFilter{
		UserID:    userFromContext(r.Context()),
		SectionID: r.URL.Query().Get("section_id"),
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		d, err := models.ParseDifficulty(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("difficulty", "must be easy or hard"))
			return
		}
		filter.Difficulty = d
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		handleError(w, r, err)
		return
	}

	list, err := s.ProgressService.ListProgress(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if list == nil {
		list = []models.StudyProgress{}
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.ProgressService.GetProgress(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "flashcardID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}
