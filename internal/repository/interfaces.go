package repository

import (
	"context"
	"time"

	"github.com/vytor/flashstudy/internal/models"
)

// Get methods return (nil, nil) when the row does not exist.

// BookRepository handles book data access
type BookRepository interface {
	Insert(ctx context.Context, book models.Book) (*models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	ListByUser(ctx context.Context, userID string) ([]models.Book, error)
}

// SectionRepository handles section data access
type SectionRepository interface {
	Insert(ctx context.Context, section models.Section) (*models.Section, error)
	Get(ctx context.Context, id string) (*models.Section, error)
	ListByBook(ctx context.Context, bookID string) ([]models.Section, error)
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Insert(ctx context.Context, card models.Flashcard) (*models.Flashcard, error)
	Get(ctx context.Context, id string) (*models.Flashcard, error)
	ListBySection(ctx context.Context, sectionID string) ([]models.Flashcard, error)
}

// ProgressRepository handles study progress data access
type ProgressRepository interface {
	Upsert(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty, at time.Time) (*models.StudyProgress, error)
	Get(ctx context.Context, userID, flashcardID string) (*models.StudyProgress, error)
	List(ctx context.Context, filter models.ProgressFilter) ([]models.StudyProgress, error)
}
