package services

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashstudy/internal/errors"
	"github.com/vytor/flashstudy/internal/jobs"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/study"
)

// SessionView is what callers see of a live session.
type SessionView struct {
	ID    string `json:"id"`
	State string `json:"state"`
	study.Snapshot
}

// StartResult is returned by StartSession. Empty is set when the scope has
// no cards, in which case no session exists.
type StartResult struct {
	Empty   bool         `json:"empty"`
	Session *SessionView `json:"session,omitempty"`
}

// AnswerResult describes the session after an answer. Notice is set when
// the progress write could not be queued; the answer itself still counts.
type AnswerResult struct {
	Session        SessionView    `json:"session"`
	Complete       bool           `json:"complete"`
	Summary        *study.Summary `json:"summary,omitempty"`
	ProgressQueued bool           `json:"progress_queued"`
	Notice         string         `json:"notice,omitempty"`
}

// ExitResult is returned by Exit. When ConfirmationRequired is set the
// session is still alive and Summary shows what would be kept.
type ExitResult struct {
	ConfirmationRequired bool          `json:"confirmation_required"`
	Summary              study.Summary `json:"summary"`
}

// StudyService drives study sessions for users
type StudyService interface {
	StartSession(ctx context.Context, userID string, scope models.Scope) (*StartResult, error)
	Snapshot(ctx context.Context, userID, sessionID string) (*SessionView, error)
	Flip(ctx context.Context, userID, sessionID string) (*SessionView, error)
	Answer(ctx context.Context, userID, sessionID string, difficulty models.Difficulty) (*AnswerResult, error)
	Exit(ctx context.Context, userID, sessionID string, confirmed bool) (*ExitResult, error)
	Summary(ctx context.Context, userID, sessionID string) (*study.Summary, error)
	// EvictIdle drops sessions idle for longer than ttl and returns how many.
	EvictIdle(ctx context.Context, ttl time.Duration) int
	ActiveSessions() int
}

// StudyOption configures a StudyService
type StudyOption func(*studyService)

// WithRand sets the random source used to shuffle decks.
func WithRand(rng *rand.Rand) StudyOption {
	return func(s *studyService) {
		s.rng = rng
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) StudyOption {
	return func(s *studyService) {
		s.now = now
	}
}

type studyService struct {
	cards    CardSource
	queue    jobs.JobQueue
	sessions *sessionStore
	now      func() time.Time

	// rngMu guards rng, which is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewStudyService creates a new StudyService
func NewStudyService(cards CardSource, queue jobs.JobQueue, opts ...StudyOption) StudyService {
	s := &studyService{
		cards:    cards,
		queue:    queue,
		sessions: newSessionStore(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *studyService) StartSession(ctx context.Context, userID string, scope models.Scope) (*StartResult, error) {
	log := logger.FromContext(ctx).WithPrefix("study")
	log.Debug("starting session: user=%s scope=%s", userID, scope)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "required")
	}
	if scope.ID == "" {
		return nil, errors.NewValidationError("id", "required")
	}

	var (
		cards []models.Flashcard
		err   error
	)
	switch scope.Kind {
	case models.ScopeSection:
		cards, err = s.cards.ListCardsForSection(ctx, scope.ID)
	case models.ScopeBook:
		cards, err = s.cards.ListCardsForBook(ctx, scope.ID)
	default:
		return nil, errors.NewValidationError("scope", "must be section or book")
	}
	if err != nil {
		return nil, err
	}

	session, err := study.NewSession(s.shuffle(cards))
	if stderrors.Is(err, study.ErrEmptyDeck) {
		log.Info("no cards to study for %s", scope)
		return &StartResult{Empty: true}, nil
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	entry := &sessionEntry{
		id:       uuid.NewString(),
		userID:   userID,
		session:  session,
		lastSeen: s.now(),
	}
	s.sessions.add(entry)
	log.Info("session %s started with %d cards", entry.id, session.Len())

	view := viewOf(entry)
	return &StartResult{Session: &view}, nil
}

func (s *studyService) Snapshot(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	entry, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	view := viewOf(entry)
	return &view, nil
}

func (s *studyService) Flip(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	entry, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	entry.session.Flip()
	view := viewOf(entry)
	return &view, nil
}

// Answer rates the current card, queues the progress write and moves on.
// The write is never awaited.
func (s *studyService) Answer(ctx context.Context, userID, sessionID string, difficulty models.Difficulty) (*AnswerResult, error) {
	log := logger.FromContext(ctx).WithPrefix("study")

	if !difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", "must be easy or hard")
	}

	entry, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	ev, ok := entry.session.Answer(difficulty)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	res := &AnswerResult{ProgressQueued: true}
	if err := s.queue.EnqueueProgress(userID, ev.FlashcardID, ev.Difficulty); err != nil {
		log.Warn("progress for card %s not queued: %v", ev.FlashcardID, err)
		res.ProgressQueued = false
		res.Notice = "progress could not be saved"
	}

	res.Session = viewOf(entry)
	if entry.session.State() == study.Complete {
		summary := entry.session.Summary()
		s.sessions.remove(entry.id)
		res.Complete = true
		res.Summary = &summary
		log.Info("session %s complete: %d/%d", entry.id, summary.Answered, summary.Total)
	}
	return res, nil
}

// Exit ends the session. With answers recorded and confirmed unset, the
// session stays alive and ConfirmationRequired is reported instead.
func (s *studyService) Exit(ctx context.Context, userID, sessionID string, confirmed bool) (*ExitResult, error) {
	log := logger.FromContext(ctx).WithPrefix("study")

	entry, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	if entry.session.NeedsExitConfirmation() && !confirmed {
		return &ExitResult{ConfirmationRequired: true, Summary: entry.session.Summary()}, nil
	}

	summary := entry.session.Exit()
	s.sessions.remove(entry.id)
	log.Info("session %s exited: %d/%d", entry.id, summary.Answered, summary.Total)
	return &ExitResult{Summary: summary}, nil
}

func (s *studyService) Summary(ctx context.Context, userID, sessionID string) (*study.Summary, error) {
	entry, err := s.acquire(userID, sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	summary := entry.session.Summary()
	return &summary, nil
}

func (s *studyService) EvictIdle(ctx context.Context, ttl time.Duration) int {
	evicted := s.sessions.evictIdle(s.now().Add(-ttl))
	if len(evicted) > 0 {
		logger.FromContext(ctx).WithPrefix("study").Info("evicted %d idle sessions", len(evicted))
	}
	return len(evicted)
}

func (s *studyService) ActiveSessions() int {
	return s.sessions.len()
}

func (s *studyService) shuffle(cards []models.Flashcard) []models.Flashcard {
	if s.rng == nil {
		return study.Shuffle(cards, nil)
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return study.Shuffle(cards, s.rng)
}

// acquire returns the caller's live session with its lock held.
func (s *studyService) acquire(userID, sessionID string) (*sessionEntry, error) {
	entry := s.sessions.get(userID, sessionID)
	if entry == nil {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	entry.mu.Lock()
	// A concurrent request may have finished the session while we waited.
	if entry.session.Done() {
		entry.mu.Unlock()
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	entry.lastSeen = s.now()
	return entry, nil
}

func viewOf(e *sessionEntry) SessionView {
	snap := e.session.Snapshot()
	return SessionView{ID: e.id, State: snap.State.String(), Snapshot: snap}
}
