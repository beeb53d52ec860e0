package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

const selectProgress = `
SELECT id, user_id, flashcard_id, difficulty, repetitions, last_studied
FROM study_progress
WHERE user_id = ? AND flashcard_id = ?
`

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert records one answer. A new row starts at one repetition; an existing
// row takes the new difficulty and timestamp and gains one repetition.
func (r *progressRepository) Upsert(ctx context.Context, userID, flashcardID string, difficulty models.Difficulty, at time.Time) (*models.StudyProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s, flashcard_id=%s, difficulty=%s", userID, flashcardID, difficulty)

	if !difficulty.Valid() {
		return nil, fmt.Errorf("upsert progress: invalid difficulty %q", difficulty)
	}

	var p models.StudyProgress
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO study_progress (id, user_id, flashcard_id, difficulty, repetitions, last_studied)
VALUES (?, ?, ?, ?, 1, ?)
ON CONFLICT(user_id, flashcard_id) DO UPDATE SET
    difficulty   = excluded.difficulty,
    repetitions  = study_progress.repetitions + 1,
    last_studied = excluded.last_studied
`, uuid.NewString(), userID, flashcardID, string(difficulty), stamp(at))
		if err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}
		return scanProgress(tx.QueryRowContext(ctx, selectProgress, userID, flashcardID), &p)
	})
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
		return nil, err
	}
	log.Debug("progress stored: repetitions=%d", p.Repetitions)
	return &p, nil
}

func (r *progressRepository) Get(ctx context.Context, userID, flashcardID string) (*models.StudyProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, flashcard_id=%s", userID, flashcardID)

	var p models.StudyProgress
	err := scanProgress(r.db.QueryRowContext(ctx, selectProgress, userID, flashcardID), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.StudyProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%s, difficulty=%s, section_id=%s", filter.UserID, filter.Difficulty, filter.SectionID)

	query := sqlBuilder.Select(
		"p.id", "p.user_id", "p.flashcard_id", "p.difficulty", "p.repetitions", "p.last_studied",
	).From("study_progress p")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"p.user_id": filter.UserID})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"p.difficulty": string(filter.Difficulty)})
	}
	if filter.SectionID != "" {
		query = query.Join("flashcards f ON f.id = p.flashcard_id").
			Where(squirrel.Eq{"f.section_id": filter.SectionID})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.OrderBy("p.last_studied DESC", "p.rowid DESC").Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.StudyProgress
	for rows.Next() {
		var p models.StudyProgress
		if err := scanProgress(rows, &p); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out = append(out, p)
	}
	log.Debug("found %d progress records", len(out))
	return out, rows.Err()
}

func scanProgress(row rowScanner, p *models.StudyProgress) error {
	var difficulty string
	if err := row.Scan(&p.ID, &p.UserID, &p.FlashcardID, &difficulty, &p.Repetitions, &p.LastStudied); err != nil {
		return err
	}
	p.Difficulty = models.Difficulty(difficulty)
	return nil
}
