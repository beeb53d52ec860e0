package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashstudy/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty, at time.Time) (*models.StudyProgress, error) {
	args := m.Called(ctx, userID, flashcardID, difficulty, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyProgress), args.Error(1)
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, flashcardID string) (*models.StudyProgress, error) {
	args := m.Called(ctx, userID, flashcardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyProgress), args.Error(1)
}

func (m *MockProgressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.StudyProgress, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyProgress), args.Error(1)
}

// MockProgressRecorder is a mock implementation of worker.ProgressRecorder
type MockProgressRecorder struct {
	mock.Mock
}

func (m *MockProgressRecorder) RecordAnswer(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty) (*models.StudyProgress, error) {
	args := m.Called(ctx, userID, flashcardID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyProgress), args.Error(1)
}
