package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

var flashcardColumns = []string{
	"id", "section_id", "front_text", "back_text",
	"front_gradient", "front_custom_gradient", "front_font", "front_image", "front_audio",
	"back_gradient", "back_custom_gradient", "back_font", "back_image", "back_audio",
	"created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(row rowScanner) (models.Flashcard, error) {
	var c models.Flashcard
	err := row.Scan(&c.ID, &c.SectionID, &c.FrontText, &c.BackText,
		&c.Front.Gradient, &c.Front.CustomGradient, &c.Front.Font, &c.Front.Image, &c.Front.Audio,
		&c.Back.Gradient, &c.Back.CustomGradient, &c.Back.Font, &c.Back.Image, &c.Back.Audio,
		&c.CreatedAt)
	return c, err
}

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	c = c.WithDefaults()
	c.ID = newID(c.ID)
	c.CreatedAt = stamp(c.CreatedAt)
	log.Debug("inserting flashcard: id=%s, section_id=%s", c.ID, c.SectionID)

	query, args, err := sqlBuilder.Insert("flashcards").Columns(flashcardColumns...).Values(
		c.ID, c.SectionID, c.FrontText, c.BackText,
		c.Front.Gradient, c.Front.CustomGradient, c.Front.Font, c.Front.Image, c.Front.Audio,
		c.Back.Gradient, c.Back.CustomGradient, c.Back.Font, c.Back.Image, c.Back.Audio,
		c.CreatedAt,
	).ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%s", id)

	query, args, err := sqlBuilder.Select(flashcardColumns...).From("flashcards").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanFlashcard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

// ListBySection returns the section's cards, newest first.
func (r *flashcardRepository) ListBySection(ctx context.Context, sectionID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: section_id=%s", sectionID)

	query, args, err := sqlBuilder.Select(flashcardColumns...).From("flashcards").
		Where(squirrel.Eq{"section_id": sectionID}).
		OrderBy("created_at DESC", "rowid DESC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}
