package models

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the user's rating of a card after seeing its back.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyHard
}

// ParseDifficulty accepts "easy" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// StudyProgress is the per-user, per-card study history. There is at most one
// row per (UserID, FlashcardID).
type StudyProgress struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	FlashcardID string     `json:"flashcard_id"`
	Difficulty  Difficulty `json:"difficulty"`
	Repetitions int        `json:"repetitions"`
	LastStudied time.Time  `json:"last_studied"`
}

type ProgressFilter struct {
	UserID     string
	Difficulty Difficulty
	SectionID  string
	Limit      int
	Offset     int
}
