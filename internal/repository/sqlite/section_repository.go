package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

type sectionRepository struct {
	db *sql.DB
}

// NewSectionRepository creates a new SectionRepository implementation
func NewSectionRepository(db *sql.DB) repository.SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Insert(ctx context.Context, s models.Section) (*models.Section, error) {
	log := logger.FromContext(ctx).WithPrefix("section_repo")
	s.ID = newID(s.ID)
	s.CreatedAt = stamp(s.CreatedAt)
	log.Debug("inserting section: id=%s, book_id=%s", s.ID, s.BookID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sections (id, name, book_id, created_at)
VALUES (?, ?, ?, ?)
`, s.ID, s.Name, s.BookID, s.CreatedAt)
	if err != nil {
		log.Error("failed to insert section: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sectionRepository) Get(ctx context.Context, id string) (*models.Section, error) {
	log := logger.FromContext(ctx).WithPrefix("section_repo")
	log.Debug("getting section: id=%s", id)

	var s models.Section
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, book_id, created_at
FROM sections
WHERE id = ?
`, id).Scan(&s.ID, &s.Name, &s.BookID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("section not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get section: %v", err)
		return nil, err
	}
	return &s, nil
}

// ListByBook returns the book's sections, newest first.
func (r *sectionRepository) ListByBook(ctx context.Context, bookID string) ([]models.Section, error) {
	log := logger.FromContext(ctx).WithPrefix("section_repo")
	log.Debug("listing sections: book_id=%s", bookID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, book_id, created_at
FROM sections
WHERE book_id = ?
ORDER BY created_at DESC, rowid DESC
`, bookID)
	if err != nil {
		log.Error("failed to list sections: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.BookID, &s.CreatedAt); err != nil {
			log.Error("failed to scan section row: %v", err)
			return nil, err
		}
		sections = append(sections, s)
	}
	log.Debug("found %d sections", len(sections))
	return sections, rows.Err()
}
