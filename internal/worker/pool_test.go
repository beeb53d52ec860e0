package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/worker"
)

type funcJob struct {
	fn func(context.Context) error
}

func (j funcJob) Name() string                  { return "func" }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := worker.NewPool(3, 16)
	p.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(funcJob{fn: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}
	p.Stop()

	assert.Equal(t, int32(10), ran.Load())
}

func TestPool_SubmitNeverBlocks(t *testing.T) {
	p := worker.NewPool(1, 1)
	noop := funcJob{fn: func(context.Context) error { return nil }}

	require.NoError(t, p.Submit(noop))
	assert.ErrorIs(t, p.Submit(noop), worker.ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())

	p.Start(context.Background())
	p.Stop()
	assert.Equal(t, 0, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 4)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_SurvivesFailingJobs(t *testing.T) {
	p := worker.NewPool(1, 8)
	p.Start(context.Background())

	var ran atomic.Int32
	require.NoError(t, p.Submit(funcJob{fn: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, p.Submit(funcJob{fn: func(context.Context) error { panic("worse") }}))
	require.NoError(t, p.Submit(funcJob{fn: func(context.Context) error {
		ran.Add(1)
		return nil
	}}))
	p.Stop()

	assert.Equal(t, int32(1), ran.Load())
}

func TestPool_JobsIgnoreCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := worker.NewPool(1, 8)

	var sawErr error
	var mu sync.Mutex
	require.NoError(t, p.Submit(funcJob{fn: func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		sawErr = ctx.Err()
		return nil
	}}))

	cancel()
	p.Start(ctx)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.NoError(t, sawErr)
}

type recorderFunc func(ctx context.Context, userID, flashcardID string, d models.Difficulty) (*models.StudyProgress, error)

func (f recorderFunc) RecordAnswer(ctx context.Context, userID, flashcardID string, d models.Difficulty) (*models.StudyProgress, error) {
	return f(ctx, userID, flashcardID, d)
}

func TestRecordProgressJob(t *testing.T) {
	var got []string
	job := &worker.RecordProgressJob{
		Recorder: recorderFunc(func(_ context.Context, userID, flashcardID string, d models.Difficulty) (*models.StudyProgress, error) {
			got = append(got, userID, flashcardID, string(d))
			return &models.StudyProgress{Difficulty: d, Repetitions: 1}, nil
		}),
		UserID:      "u1",
		FlashcardID: "c1",
		Difficulty:  models.DifficultyHard,
	}

	assert.Equal(t, "record_progress", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"u1", "c1", "hard"}, got)
}

func TestRecordProgressJob_Error(t *testing.T) {
	job := &worker.RecordProgressJob{
		Recorder: recorderFunc(func(context.Context, string, string, models.Difficulty) (*models.StudyProgress, error) {
			return nil, errors.New("db locked")
		}),
		FlashcardID: "c9",
		Difficulty:  models.DifficultyEasy,
	}

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c9")
	assert.Contains(t, err.Error(), "db locked")
}
