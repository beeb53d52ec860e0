package models

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Section struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BookID    string    `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}
