package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashstudy/internal/models"
)

// MockCardSource is a mock implementation of services.CardSource
type MockCardSource struct {
	mock.Mock
}

func (m *MockCardSource) ListCardsForSection(ctx context.Context, sectionID string) ([]models.Flashcard, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockCardSource) ListCardsForBook(ctx context.Context, bookID string) ([]models.Flashcard, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}
