package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashstudy/internal/models"
)

// MockBookRepository is a mock implementation of repository.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Insert(ctx context.Context, book models.Book) (*models.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Get(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) ListByUser(ctx context.Context, userID string) ([]models.Book, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

// MockSectionRepository is a mock implementation of repository.SectionRepository
type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) Insert(ctx context.Context, section models.Section) (*models.Section, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockSectionRepository) Get(ctx context.Context, id string) (*models.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockSectionRepository) ListByBook(ctx context.Context, bookID string) ([]models.Section, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Section), args.Error(1)
}

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Insert(ctx context.Context, card models.Flashcard) (*models.Flashcard, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) ListBySection(ctx context.Context, sectionID string) ([]models.Flashcard, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}
