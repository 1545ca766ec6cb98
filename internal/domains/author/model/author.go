package model

import (
	"time"

	"github.com/google/uuid"
)

// Author entity
// PublishedCount là derived, denormalized attribute:
// invariant published_count == count(books where author_id == id)
// Chỉ reconciler được phép ghi field này, general update không đụng tới
type Author struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Bio            *string   `json:"bio" db:"bio"`
	PublishedCount int       `json:"published_count" db:"published_count"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
