package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "github.com/MiguelRodac/api-books/internal/domains/author/model"
	"github.com/MiguelRodac/api-books/internal/domains/book/model"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
)

// fakeBookRepo là in-memory book store
type fakeBookRepo struct {
	books map[uuid.UUID]*model.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uuid.UUID]*model.Book)}
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	clone := *b
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.books[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookRepo) GetAll(ctx context.Context) ([]model.Book, error) {
	var out []model.Book
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookRepo) GetByAuthorID(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	var out []model.Book
	for _, b := range f.books {
		if b.AuthorID == authorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	if _, ok := f.books[b.ID]; !ok {
		return nil, model.ErrBookNotFound
	}
	clone := *b
	f.books[b.ID] = &clone
	return &clone, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

// fakeAuthorStore chỉ cần ExistsByID cho book service
type fakeAuthorStore struct {
	ids map[uuid.UUID]bool
}

func (f *fakeAuthorStore) Create(ctx context.Context, a *authorModel.Author) (*authorModel.Author, error) {
	return nil, errors.New("not used")
}
func (f *fakeAuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*authorModel.Author, error) {
	return nil, errors.New("not used")
}
func (f *fakeAuthorStore) GetAll(ctx context.Context) ([]authorModel.Author, error) {
	return nil, errors.New("not used")
}
func (f *fakeAuthorStore) Update(ctx context.Context, a *authorModel.Author) (*authorModel.Author, error) {
	return nil, errors.New("not used")
}
func (f *fakeAuthorStore) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not used")
}
func (f *fakeAuthorStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.ids[id], nil
}
func (f *fakeAuthorStore) CountBooks(ctx context.Context, authorID uuid.UUID) (int, error) {
	return 0, errors.New("not used")
}
func (f *fakeAuthorStore) UpdatePublishedCount(ctx context.Context, authorID uuid.UUID, count int) error {
	return errors.New("not used")
}
func (f *fakeAuthorStore) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return nil, errors.New("not used")
}

// fakeReconciler records reconcile calls và có thể inject failure
type fakeReconciler struct {
	calls []uuid.UUID
	err   error
}

func (f *fakeReconciler) ReconcileOne(ctx context.Context, authorID uuid.UUID) error {
	f.calls = append(f.calls, authorID)
	return f.err
}

func (f *fakeReconciler) ReconcileAll(ctx context.Context) (authorModel.ReconcileResult, error) {
	return authorModel.ReconcileResult{}, nil
}

func setup(authorIDs ...uuid.UUID) (*fakeBookRepo, *fakeReconciler, ServiceInterface) {
	repo := newFakeBookRepo()
	authors := &fakeAuthorStore{ids: make(map[uuid.UUID]bool)}
	for _, id := range authorIDs {
		authors.ids[id] = true
	}
	rec := &fakeReconciler{}
	return repo, rec, NewBookService(repo, authors, rec)
}

func createReq(authorID uuid.UUID) *model.CreateBookRequest {
	return &model.CreateBookRequest{
		Title:       "The Dispossessed",
		PublishedAt: time.Date(1974, 5, 1, 0, 0, 0, 0, time.UTC),
		AuthorID:    authorID,
	}
}

// ========================================
// CREATE
// ========================================

func TestCreateBookReconcilesAuthorCounter(t *testing.T) {
	authorID := uuid.New()
	_, rec, svc := setup(authorID)

	b, err := svc.Create(context.Background(), createReq(authorID))
	require.NoError(t, err)
	assert.Equal(t, authorID, b.AuthorID)
	assert.True(t, b.Available, "available defaults to true")

	// Counter recomputed synchronously for the book's author
	require.Len(t, rec.calls, 1)
	assert.Equal(t, authorID, rec.calls[0])
}

func TestCreateBookUnknownAuthor(t *testing.T) {
	repo, rec, svc := setup() // no authors registered

	_, err := svc.Create(context.Background(), createReq(uuid.New()))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// Nothing persisted, nothing reconciled
	assert.Empty(t, repo.books)
	assert.Empty(t, rec.calls)
}

func TestCreateBookReconcileFailureKeepsBook(t *testing.T) {
	authorID := uuid.New()
	repo, rec, svc := setup(authorID)
	rec.err = errors.New("row lock timeout")

	_, err := svc.Create(context.Background(), createReq(authorID))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))

	// Book persisted despite the failed counter update - nightly
	// batch converges the counter later
	assert.Len(t, repo.books, 1)
}

func TestCreateBookValidation(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.Create(context.Background(), &model.CreateBookRequest{
		Title:    "",
		AuthorID: uuid.Nil,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// ========================================
// READ / UPDATE / DELETE
// ========================================

func TestGetBookByIDNotFound(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetBooksByUnknownAuthor(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.GetByAuthorID(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateBookPartial(t *testing.T) {
	authorID := uuid.New()
	_, _, svc := setup(authorID)

	b, err := svc.Create(context.Background(), createReq(authorID))
	require.NoError(t, err)

	title := "The Left Hand of Darkness"
	available := false
	updated, err := svc.Update(context.Background(), b.ID, &model.UpdateBookRequest{
		Title:     &title,
		Available: &available,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.False(t, updated.Available)
	// Fields not in the request untouched
	assert.Equal(t, b.PublishedAt, updated.PublishedAt)
}

func TestDeleteBookDoesNotReconcile(t *testing.T) {
	authorID := uuid.New()
	repo, rec, svc := setup(authorID)

	b, err := svc.Create(context.Background(), createReq(authorID))
	require.NoError(t, err)
	rec.calls = nil

	// Deletion leaves the counter stale until the nightly batch
	require.NoError(t, svc.Delete(context.Background(), b.ID))
	assert.Empty(t, repo.books)
	assert.Empty(t, rec.calls)
}
