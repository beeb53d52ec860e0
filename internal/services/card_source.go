package services

import (
	"context"

	"github.com/vytor/flashstudy/internal/errors"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

// CardSource returns the flat list of cards a study session draws from.
// Unknown sections and books are NOT_FOUND errors; an existing scope with no
// cards yields an empty list.
type CardSource interface {
	ListCardsForSection(ctx context.Context, sectionID string) ([]models.Flashcard, error)
	ListCardsForBook(ctx context.Context, bookID string) ([]models.Flashcard, error)
}

type cardSource struct {
	books      repository.BookRepository
	sections   repository.SectionRepository
	flashcards repository.FlashcardRepository
}

// NewCardSource creates a CardSource backed by the repositories
func NewCardSource(books repository.BookRepository, sections repository.SectionRepository, flashcards repository.FlashcardRepository) CardSource {
	return &cardSource{books: books, sections: sections, flashcards: flashcards}
}

func (c *cardSource) ListCardsForSection(ctx context.Context, sectionID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)

	section, err := c.sections.Get(ctx, sectionID)
	if err != nil {
		log.Error("failed to load section: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if section == nil {
		return nil, errors.NewNotFoundError("section", sectionID)
	}

	cards, err := c.flashcards.ListBySection(ctx, sectionID)
	if err != nil {
		log.Error("failed to list section cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

// ListCardsForBook concatenates the cards of every section in the order the
// sections are stored.
func (c *cardSource) ListCardsForBook(ctx context.Context, bookID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)

	book, err := c.books.Get(ctx, bookID)
	if err != nil {
		log.Error("failed to load book: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if book == nil {
		return nil, errors.NewNotFoundError("book", bookID)
	}

	sections, err := c.sections.ListByBook(ctx, bookID)
	if err != nil {
		log.Error("failed to list book sections: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var cards []models.Flashcard
	for _, s := range sections {
		sectionCards, err := c.flashcards.ListBySection(ctx, s.ID)
		if err != nil {
			log.Error("failed to list cards for section %s: %v", s.ID, err)
			return nil, errors.NewInternalError(err)
		}
		cards = append(cards, sectionCards...)
	}
	log.Debug("book %s has %d cards across %d sections", bookID, len(cards), len(sections))
	return cards, nil
}
