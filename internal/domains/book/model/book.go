package model

import (
	"time"

	"github.com/google/uuid"
)

// Book entity - mỗi book thuộc về đúng 1 author (author_id FK)
type Book struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	Available   bool      `json:"available" db:"available"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
