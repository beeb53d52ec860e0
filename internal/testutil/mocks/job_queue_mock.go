package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashstudy/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueProgress(userID, flashcardID string, difficulty models.Difficulty) error {
	args := m.Called(userID, flashcardID, difficulty)
	return args.Error(0)
}
