package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	authorModel "github.com/MiguelRodac/api-books/internal/domains/author/model"
	authorRepo "github.com/MiguelRodac/api-books/internal/domains/author/repository"
	authorService "github.com/MiguelRodac/api-books/internal/domains/author/service"
	"github.com/MiguelRodac/api-books/internal/domains/book/model"
	"github.com/MiguelRodac/api-books/internal/domains/book/repository"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/pkg/logger"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetAll(ctx context.Context) ([]model.Book, error)
	GetByAuthorID(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookService struct {
	repo       repository.RepositoryInterface
	authors    authorRepo.RepositoryInterface
	reconciler authorService.Reconciler
}

func NewBookService(
	repo repository.RepositoryInterface,
	authors authorRepo.RepositoryInterface,
	reconciler authorService.Reconciler,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		authors:    authors,
		reconciler: reconciler,
	}
}

// Create validates author tồn tại trước khi insert, sau đó reconcile
// published_count của author đó ngay (synchronous).
//
// Insert và reconcile KHÔNG nằm trong cùng transaction: nếu reconcile
// fail thì book đã persist nhưng counter stale - trả về Internal error,
// nightly batch job sẽ tự sửa counter ở lần chạy kế tiếp.
func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	exists, err := s.authors.ExistsByID(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, authorModel.ErrAuthorNotFound
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	newBook := &model.Book{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		PublishedAt: req.PublishedAt,
		Available:   available,
		AuthorID:    req.AuthorID,
	}

	created, err := s.repo.Create(ctx, newBook)
	if err != nil {
		return nil, err
	}

	if err := s.reconciler.ReconcileOne(ctx, created.AuthorID); err != nil {
		logger.Error("reconcile after book create failed", err)
		return nil, apperror.Internal("Internal server error").Wrap(err)
	}

	return created, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) GetAll(ctx context.Context) ([]model.Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *bookService) GetByAuthorID(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, authorModel.ErrAuthorNotFound
	}
	return s.repo.GetByAuthorID(ctx, authorID)
}

// Update không cho đổi author_id - giữ counter đơn giản,
// muốn chuyển author thì delete rồi tạo lại
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.PublishedAt != nil {
		b.PublishedAt = *req.PublishedAt
	}
	if req.Available != nil {
		b.Available = *req.Available
	}

	return s.repo.Update(ctx, b)
}

// Delete không reconcile counter - published_count của author sẽ stale
// cho tới nightly batch. Chỉ book create mới reconcile synchronous.
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
