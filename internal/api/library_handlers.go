package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
)

type createBookRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type createSectionRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	BookID string `json:"book_id" validate:"required"`
}

type cardFaceRequest struct {
	Gradient       string `json:"gradient"`
	CustomGradient string `json:"custom_gradient"`
	Font           string `json:"font"`
	Image          string `json:"image" validate:"omitempty,max=2048"`
	Audio          string `json:"audio" validate:"omitempty,max=2048"`
}

type createFlashcardRequest struct {
	SectionID string          `json:"section_id" validate:"required"`
	FrontText string          `json:"front_text" validate:"required"`
	BackText  string          `json:"back_text" validate:"required"`
	Front     cardFaceRequest `json:"front"`
	Back      cardFaceRequest `json:"back"`
}

func (f cardFaceRequest) face() models.CardFace {
	return models.CardFace{
		Gradient:       f.Gradient,
		CustomGradient: f.CustomGradient,
		Font:           f.Font,
		Image:          f.Image,
		Audio:          f.Audio,
	}
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	book, err := s.LibraryService.CreateBook(r.Context(), models.Book{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userFromContext(r.Context()),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("book created: id=%s", book.ID)
	writeJSON(w, r, http.StatusCreated, book)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.LibraryService.ListBooks(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	writeJSON(w, r, http.StatusOK, books)
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var req createSectionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	section, err := s.LibraryService.CreateSection(r.Context(), models.Section{Name: req.Name, BookID: req.BookID})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, section)
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.LibraryService.ListSections(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if sections == nil {
		sections = []models.Section{}
	}
	writeJSON(w, r, http.StatusOK, sections)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req createFlashcardRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.LibraryService.CreateFlashcard(r.Context(), models.Flashcard{
		SectionID: req.SectionID,
		FrontText: req.FrontText,
		BackText:  req.BackText,
		Front:     req.Front.face(),
		Back:      req.Back.face(),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleListSectionFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.CardSource.ListCardsForSection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeCards(w, r, cards)
}

func (s *Server) handleListBookFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.CardSource.ListCardsForBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeCards(w, r, cards)
}

func writeCards(w http.ResponseWriter, r *http.Request, cards []models.Flashcard) {
	if cards == nil {
		cards = []models.Flashcard{}
	}
	writeJSON(w, r, http.StatusOK, cards)
}
