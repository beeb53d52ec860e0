package worker

import (
	"context"
	"fmt"

	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
)

// RecordProgressJob writes the progress record for one answered card.
type RecordProgressJob struct {
	Recorder    ProgressRecorder
	UserID      string
	FlashcardID string
	Difficulty  models.Difficulty
}

func (j *RecordProgressJob) Name() string { return "record_progress" }

func (j *RecordProgressJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":      j.UserID,
		"flashcard_id": j.FlashcardID,
	})

	p, err := j.Recorder.RecordAnswer(ctx, j.UserID, j.FlashcardID, j.Difficulty)
	if err != nil {
		return fmt.Errorf("record progress for %s: %w", j.FlashcardID, err)
	}
	log.Debug("progress recorded: difficulty=%s, repetitions=%d", p.Difficulty, p.Repetitions)
	return nil
}
