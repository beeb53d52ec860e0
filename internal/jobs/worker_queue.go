package jobs

import (
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	progressPool *worker.Pool
	recorder     worker.ProgressRecorder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(progressPool *worker.Pool, recorder worker.ProgressRecorder) JobQueue {
	return &WorkerQueue{
		progressPool: progressPool,
		recorder:     recorder,
	}
}

func (q *WorkerQueue) EnqueueProgress(userID, flashcardID string, difficulty models.Difficulty) error {
	return q.progressPool.Submit(&worker.RecordProgressJob{
		Recorder:    q.recorder,
		UserID:      userID,
		FlashcardID: flashcardID,
		Difficulty:  difficulty,
	})
}
