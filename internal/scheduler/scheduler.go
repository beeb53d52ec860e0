package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/flashstudy/internal/logger"
)

// Sweeper drops study sessions nobody touched for longer than ttl
type Sweeper interface {
	EvictIdle(ctx context.Context, ttl time.Duration) int
}

// Scheduler runs periodic maintenance tasks
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	idleTTL   time.Duration
	interval  time.Duration
	log       *logger.Logger
}

// New creates a scheduler that sweeps idle sessions every interval
func New(sweeper Sweeper, idleTTL, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		sweeper:   sweeper,
		idleTTL:   idleTTL,
		interval:  interval,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.sweepIdleSessions); err != nil {
		return fmt.Errorf("schedule idle session sweep: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("idle session sweep every %s, ttl %s", s.interval, s.idleTTL)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepIdleSessions() {
	ctx := logger.NewContext(context.Background(), s.log)
	n := s.sweeper.EvictIdle(ctx, s.idleTTL)
	s.log.Debug("idle session sweep done: evicted=%d", n)
}
