package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository implementation
func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Insert(ctx context.Context, b models.Book) (*models.Book, error) {
	log := logger.FromContext(ctx).WithPrefix("book_repo")
	b.ID = newID(b.ID)
	b.CreatedAt = stamp(b.CreatedAt)
	log.Debug("inserting book: id=%s, user_id=%s", b.ID, b.UserID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO books (id, title, description, user_id, created_at)
VALUES (?, ?, ?, ?, ?)
`, b.ID, b.Title, b.Description, b.UserID, b.CreatedAt)
	if err != nil {
		log.Error("failed to insert book: %v", err)
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Get(ctx context.Context, id string) (*models.Book, error) {
	log := logger.FromContext(ctx).WithPrefix("book_repo")
	log.Debug("getting book: id=%s", id)

	var b models.Book
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, description, user_id, created_at
FROM books
WHERE id = ?
`, id).Scan(&b.ID, &b.Title, &b.Description, &b.UserID, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("book not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get book: %v", err)
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) ListByUser(ctx context.Context, userID string) ([]models.Book, error) {
	log := logger.FromContext(ctx).WithPrefix("book_repo")
	log.Debug("listing books: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, user_id, created_at
FROM books
WHERE user_id = ?
ORDER BY created_at DESC, rowid DESC
`, userID)
	if err != nil {
		log.Error("failed to list books: %v", err)
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.UserID, &b.CreatedAt); err != nil {
			log.Error("failed to scan book row: %v", err)
			return nil, err
		}
		books = append(books, b)
	}
	log.Debug("found %d books", len(books))
	return books, rows.Err()
}
