package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/MiguelRodac/api-books/internal/domains/book/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetAll(ctx context.Context) ([]model.Book, error)
	GetByAuthorID(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
