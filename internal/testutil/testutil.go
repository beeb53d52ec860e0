package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashstudy/internal/db"
	"github.com/vytor/flashstudy/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is pinned to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertBook writes a book row directly.
func InsertBook(t *testing.T, sqlDB *sql.DB, id, userID string, createdAt time.Time) {
	_, err := sqlDB.Exec(`INSERT INTO books (id, title, user_id, created_at) VALUES (?, ?, ?, ?)`,
		id, "book "+id, userID, createdAt.UTC())
	require.NoError(t, err)
}

// InsertSection writes a section row directly.
func InsertSection(t *testing.T, sqlDB *sql.DB, id, bookID string, createdAt time.Time) {
	_, err := sqlDB.Exec(`INSERT INTO sections (id, name, book_id, created_at) VALUES (?, ?, ?, ?)`,
		id, "section "+id, bookID, createdAt.UTC())
	require.NoError(t, err)
}

// InsertFlashcard writes a flashcard row directly.
func InsertFlashcard(t *testing.T, sqlDB *sql.DB, id, sectionID string, createdAt time.Time) {
	_, err := sqlDB.Exec(`INSERT INTO flashcards (id, section_id, front_text, back_text, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, sectionID, "front "+id, "back "+id, createdAt.UTC())
	require.NoError(t, err)
}

// Cards builds flashcards with the given ids in one section.
func Cards(sectionID string, ids ...string) []models.Flashcard {
	out := make([]models.Flashcard, len(ids))
	for i, id := range ids {
		out[i] = models.Flashcard{ID: id, SectionID: sectionID, FrontText: "front " + id, BackText: "back " + id}
	}
	return out
}

// IDs returns the ids of cards in order.
func IDs(cards []models.Flashcard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
