package services

import (
	"context"
	"time"

	"github.com/vytor/flashstudy/internal/errors"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

// ProgressService records and reads per-user study progress
type ProgressService interface {
	RecordAnswer(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty) (*models.StudyProgress, error)
	GetProgress(ctx context.Context, userID, flashcardID string) (*models.StudyProgress, error)
	ListProgress(ctx context.Context, filter models.ProgressFilter) ([]models.StudyProgress, error)
}

type progressService struct {
	repo repository.ProgressRepository
	now  func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(repo repository.ProgressRepository) ProgressService {
	return &progressService{repo: repo, now: time.Now}
}

// RecordAnswer upserts the (user, card) record. Every answer counts as one
// repetition, whatever the difficulty.
func (s *progressService) RecordAnswer(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty) (*models.StudyProgress, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "required")
	}
	if flashcardID == "" {
		return nil, errors.NewValidationError("flashcard_id", "required")
	}
	if !difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", "must be easy or hard")
	}

	p, err := s.repo.Upsert(ctx, userID, flashcardID, difficulty, s.now())
	if err != nil {
		log.Error("failed to record answer: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return p, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID, flashcardID string) (*models.StudyProgress, error) {
	p, err := s.repo.Get(ctx, userID, flashcardID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("progress", flashcardID)
	}
	return p, nil
}

func (s *progressService) ListProgress(ctx context.Context, filter models.ProgressFilter) ([]models.StudyProgress, error) {
	if filter.UserID == "" {
		return nil, errors.NewValidationError("user_id", "required")
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", "must be easy or hard")
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return list, nil
}
