package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/MiguelRodac/api-books/internal/domains/author/model"
)

// RepositoryInterface gom author CRUD và counter operations mà reconciler cần:
// CountBooks + UpdatePublishedCount + ListIDs
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetAll(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Counter reconciliation primitives
	// CountBooks đếm fresh từ books collection (authoritative source)
	CountBooks(ctx context.Context, authorID uuid.UUID) (int, error)
	// UpdatePublishedCount là single-row write, không read-modify-write
	UpdatePublishedCount(ctx context.Context, authorID uuid.UUID, count int) error
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}
