package study

import (
	"errors"

	"github.com/vytor/flashstudy/internal/models"
)

// ErrEmptyDeck is returned when a session is requested over zero cards.
var ErrEmptyDeck = errors.New("study: deck is empty")

// State is the coarse state of a session.
type State int

const (
	Active State = iota
	Complete
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// ProgressEvent is emitted by Answer and is what the controller persists.
type ProgressEvent struct {
	FlashcardID string
	Difficulty  models.Difficulty
}

type Summary struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Snapshot is a read-only view of a session for callers that render it.
type Snapshot struct {
	State    State             `json:"-"`
	Index    int               `json:"index"`
	Flipped  bool              `json:"flipped"`
	Current  *models.Flashcard `json:"current,omitempty"`
	Answered int               `json:"answered"`
	Total    int               `json:"total"`
	Exited   bool              `json:"exited"`
}

// Session is the state of one run through a deck. It is owned by a single
// caller and is not safe for concurrent use.
type Session struct {
	deck     []models.Flashcard
	index    int
	flipped  bool
	answered map[string]struct{}
	complete bool
	exited   bool
}

// NewSession starts a session at the first card, face up. The deck is used
// as-is; shuffle it beforehand.
func NewSession(deck []models.Flashcard) (*Session, error) {
	if len(deck) == 0 {
		return nil, ErrEmptyDeck
	}
	d := make([]models.Flashcard, len(deck))
	copy(d, deck)
	return &Session{
		deck:     d,
		answered: make(map[string]struct{}, len(d)),
	}, nil
}

func (s *Session) State() State {
	if s.complete {
		return Complete
	}
	return Active
}

// Done reports whether no further transitions will be accepted.
func (s *Session) Done() bool {
	return s.complete || s.exited
}

func (s *Session) Index() int { return s.index }

func (s *Session) Flipped() bool { return s.flipped }

func (s *Session) Len() int { return len(s.deck) }

func (s *Session) Exited() bool { return s.exited }

// Deck returns a copy of the session's card order.
func (s *Session) Deck() []models.Flashcard {
	out := make([]models.Flashcard, len(s.deck))
	copy(out, s.deck)
	return out
}

// Current returns the card under study, or nil once the session is done.
func (s *Session) Current() *models.Flashcard {
	if s.Done() {
		return nil
	}
	c := s.deck[s.index]
	return &c
}

// Answered reports whether id has been rated in this session.
func (s *Session) Answered(id string) bool {
	_, ok := s.answered[id]
	return ok
}

// Flip turns the current card over. It does nothing once the session is done.
func (s *Session) Flip() {
	if s.Done() {
		return
	}
	s.flipped = !s.flipped
}

// Answer rates the current card and moves on. ok is false when the session is
// already done, in which case nothing changes and no event is produced.
func (s *Session) Answer(d models.Difficulty) (ev ProgressEvent, ok bool) {
	if s.Done() {
		return ProgressEvent{}, false
	}
	card := s.deck[s.index]
	ev = ProgressEvent{FlashcardID: card.ID, Difficulty: d}
	s.answered[card.ID] = struct{}{}

	if s.index == len(s.deck)-1 {
		s.complete = true
		return ev, true
	}
	s.index++
	s.flipped = false
	return ev, true
}

// NeedsExitConfirmation reports whether some cards were already rated, in
// which case the user has to confirm before leaving.
func (s *Session) NeedsExitConfirmation() bool {
	return len(s.answered) > 0
}

// Exit ends the session in any state and returns the final summary. Recorded
// answers are kept.
func (s *Session) Exit() Summary {
	s.exited = true
	return s.Summary()
}

func (s *Session) Summary() Summary {
	return Summary{Answered: len(s.answered), Total: len(s.deck)}
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:    s.State(),
		Index:    s.index,
		Flipped:  s.flipped,
		Current:  s.Current(),
		Answered: len(s.answered),
		Total:    len(s.deck),
		Exited:   s.exited,
	}
}
