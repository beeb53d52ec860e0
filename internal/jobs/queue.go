package jobs

import "github.com/vytor/flashstudy/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueProgress schedules a progress write and returns immediately.
	EnqueueProgress(userID, flashcardID string, difficulty models.Difficulty) error
}
