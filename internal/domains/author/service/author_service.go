package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MiguelRodac/api-books/internal/domains/author/model"
	"github.com/MiguelRodac/api-books/internal/domains/author/repository"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
)

// Reconciler giữ published_count consistent với books collection
// Tách interface riêng để book service chỉ phụ thuộc đúng phần này
type Reconciler interface {
	ReconcileOne(ctx context.Context, authorID uuid.UUID) error
	ReconcileAll(ctx context.Context) (model.ReconcileResult, error)
}

// ServiceInterface - author business logic
type ServiceInterface interface {
	Reconciler

	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetAll(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	newAuthor := &model.Author{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(strings.ToLower(req.Email)),
		Bio:   req.Bio,
	}

	return s.repo.Create(ctx, newAuthor)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetAll(ctx context.Context) ([]model.Author, error) {
	return s.repo.GetAll(ctx)
}

// Update chỉ đụng tới name/email/bio
// published_count là derived counter - chỉ reconciler được ghi
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		a.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.Bio != nil {
		a.Bio = req.Bio
	}

	return s.repo.Update(ctx, a)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
