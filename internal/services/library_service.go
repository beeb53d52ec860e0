package services

import (
	"context"
	"strings"

	"github.com/vytor/flashstudy/internal/errors"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

// LibraryService creates and lists books, sections and flashcards
type LibraryService interface {
	CreateBook(ctx context.Context, book models.Book) (*models.Book, error)
	ListBooks(ctx context.Context, userID string) ([]models.Book, error)
	CreateSection(ctx context.Context, section models.Section) (*models.Section, error)
	ListSections(ctx context.Context, bookID string) ([]models.Section, error)
	CreateFlashcard(ctx context.Context, card models.Flashcard) (*models.Flashcard, error)
}

type libraryService struct {
	books      repository.BookRepository
	sections   repository.SectionRepository
	flashcards repository.FlashcardRepository
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(books repository.BookRepository, sections repository.SectionRepository, flashcards repository.FlashcardRepository) LibraryService {
	return &libraryService{books: books, sections: sections, flashcards: flashcards}
}

func (s *libraryService) CreateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" {
		return nil, errors.NewValidationError("title", "required")
	}
	if book.UserID == "" {
		return nil, errors.NewValidationError("user_id", "required")
	}

	created, err := s.books.Insert(ctx, book)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create book: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}

func (s *libraryService) ListBooks(ctx context.Context, userID string) ([]models.Book, error) {
	books, err := s.books.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list books: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return books, nil
}

func (s *libraryService) CreateSection(ctx context.Context, section models.Section) (*models.Section, error) {
	section.Name = strings.TrimSpace(section.Name)
	if section.Name == "" {
		return nil, errors.NewValidationError("name", "required")
	}

	book, err := s.books.Get(ctx, section.BookID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load book: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if book == nil {
		return nil, errors.NewNotFoundError("book", section.BookID)
	}

	created, err := s.sections.Insert(ctx, section)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create section: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}

func (s *libraryService) ListSections(ctx context.Context, bookID string) ([]models.Section, error) {
	book, err := s.books.Get(ctx, bookID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load book: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if book == nil {
		return nil, errors.NewNotFoundError("book", bookID)
	}

	sections, err := s.sections.ListByBook(ctx, bookID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list sections: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return sections, nil
}

func (s *libraryService) CreateFlashcard(ctx context.Context, card models.Flashcard) (*models.Flashcard, error) {
	if strings.TrimSpace(card.FrontText) == "" {
		return nil, errors.NewValidationError("front_text", "required")
	}
	if strings.TrimSpace(card.BackText) == "" {
		return nil, errors.NewValidationError("back_text", "required")
	}

	section, err := s.sections.Get(ctx, card.SectionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load section: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if section == nil {
		return nil, errors.NewNotFoundError("section", card.SectionID)
	}

	created, err := s.flashcards.Insert(ctx, card)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}
