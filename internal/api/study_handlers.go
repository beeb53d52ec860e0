package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashstudy/internal/errors"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
)

type answerRequest struct {
	Difficulty string `json:"difficulty" validate:"required"`
}

type exitRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var scope models.Scope
	if err := s.decodeJSON(w, r, &scope); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.StudyService.StartSession(r.Context(), userFromContext(r.Context()), scope)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if res.Empty {
		logger.FromContext(r.Context()).Info("no cards to study for %s", scope)
		writeJSON(w, r, http.StatusOK, res)
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}

func (s *Server) handleSessionSnapshot(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.Snapshot(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.Flip(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		handleError(w, r, errors.NewValidationError("difficulty", "must be easy or hard"))
		return
	}

	res, err := s.StudyService.Answer(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleExit answers 409 with the pending summary when answers were recorded
// and the request did not confirm.
func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	var req exitRequest
	if r.ContentLength != 0 {
		if err := s.decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}
	}

	res, err := s.StudyService.Exit(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), req.Confirm)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if res.ConfirmationRequired {
		writeJSON(w, r, http.StatusConflict, res)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StudyService.Summary(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
