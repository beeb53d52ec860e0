package worker

import (
	"context"

	"github.com/vytor/flashstudy/internal/models"
)

// ProgressRecorder persists one answer.
// This avoids import cycles by not importing the services package
type ProgressRecorder interface {
	RecordAnswer(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty) (*models.StudyProgress, error)
}
