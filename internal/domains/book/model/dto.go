package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateBookRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Available   *bool     `json:"available,omitempty"`
	AuthorID    uuid.UUID `json:"author_id" binding:"required"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 250),
		),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author_id is required"),
			validation.By(func(value interface{}) error {
				if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
					return validation.NewError("validation_required", "author_id is required")
				}
				return nil
			}),
		),
	)
}

type UpdateBookRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Available   *bool      `json:"available,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 250)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}
