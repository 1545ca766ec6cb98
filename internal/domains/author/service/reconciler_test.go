package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelRodac/api-books/internal/domains/author/model"
)

// fakeAuthorRepo là in-memory repository cho service tests
// bookCounts mô phỏng books collection, counts là denormalized counter
type fakeAuthorRepo struct {
	authors    map[uuid.UUID]*model.Author
	bookCounts map[uuid.UUID]int

	countErr  map[uuid.UUID]error // inject failure cho CountBooks theo author
	updateErr map[uuid.UUID]error

	countCalls  int
	updateCalls int
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{
		authors:    make(map[uuid.UUID]*model.Author),
		bookCounts: make(map[uuid.UUID]int),
		countErr:   make(map[uuid.UUID]error),
		updateErr:  make(map[uuid.UUID]error),
	}
}

func (f *fakeAuthorRepo) addAuthor(books int) uuid.UUID {
	id := uuid.New()
	f.authors[id] = &model.Author{ID: id, Name: "Author", Email: id.String() + "@example.com"}
	f.bookCounts[id] = books
	return id
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	for _, existing := range f.authors {
		if existing.Email == a.Email {
			return nil, model.ErrDuplicateEmail
		}
	}
	clone := *a
	clone.ID = uuid.New()
	f.authors[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAuthorRepo) GetAll(ctx context.Context) ([]model.Author, error) {
	var out []model.Author
	for _, a := range f.authors {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	if _, ok := f.authors[a.ID]; !ok {
		return nil, model.ErrAuthorNotFound
	}
	clone := *a
	f.authors[a.ID] = &clone
	return &clone, nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeAuthorRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.authors[id]
	return ok, nil
}

func (f *fakeAuthorRepo) CountBooks(ctx context.Context, authorID uuid.UUID) (int, error) {
	f.countCalls++
	if err := f.countErr[authorID]; err != nil {
		return 0, err
	}
	return f.bookCounts[authorID], nil
}

func (f *fakeAuthorRepo) UpdatePublishedCount(ctx context.Context, authorID uuid.UUID, count int) error {
	f.updateCalls++
	if err := f.updateErr[authorID]; err != nil {
		return err
	}
	a, ok := f.authors[authorID]
	if !ok {
		return model.ErrAuthorNotFound
	}
	a.PublishedCount = count
	return nil
}

func (f *fakeAuthorRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range f.authors {
		ids = append(ids, id)
	}
	return ids, nil
}

// ========================================
// RECONCILE ONE
// ========================================

func TestReconcileOneConvergesCounter(t *testing.T) {
	repo := newFakeAuthorRepo()
	id := repo.addAuthor(3)
	repo.authors[id].PublishedCount = 99 // drifted

	svc := NewAuthorService(repo)

	require.NoError(t, svc.ReconcileOne(context.Background(), id))
	assert.Equal(t, 3, repo.authors[id].PublishedCount)
}

func TestReconcileOneIsIdempotent(t *testing.T) {
	repo := newFakeAuthorRepo()
	id := repo.addAuthor(5)

	svc := NewAuthorService(repo)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.ReconcileOne(context.Background(), id))
		assert.Equal(t, 5, repo.authors[id].PublishedCount)
	}
}

func TestReconcileOneZeroBooks(t *testing.T) {
	repo := newFakeAuthorRepo()
	id := repo.addAuthor(0)
	repo.authors[id].PublishedCount = 7

	svc := NewAuthorService(repo)

	require.NoError(t, svc.ReconcileOne(context.Background(), id))
	assert.Equal(t, 0, repo.authors[id].PublishedCount)
}

func TestReconcileOnePropagatesCountError(t *testing.T) {
	repo := newFakeAuthorRepo()
	id := repo.addAuthor(2)
	repo.countErr[id] = errors.New("connection reset")

	svc := NewAuthorService(repo)

	err := svc.ReconcileOne(context.Background(), id)
	require.Error(t, err)
	// Counter untouched when recompute fails
	assert.Equal(t, 0, repo.updateCalls)
}

// ========================================
// RECONCILE ALL
// ========================================

func TestReconcileAllUpdatesEveryAuthor(t *testing.T) {
	repo := newFakeAuthorRepo()
	a := repo.addAuthor(1)
	b := repo.addAuthor(4)
	c := repo.addAuthor(0)
	repo.authors[a].PublishedCount = 10
	repo.authors[b].PublishedCount = 10
	repo.authors[c].PublishedCount = 10

	svc := NewAuthorService(repo)

	result, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Updated)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, 1, repo.authors[a].PublishedCount)
	assert.Equal(t, 4, repo.authors[b].PublishedCount)
	assert.Equal(t, 0, repo.authors[c].PublishedCount)
}

func TestReconcileAllContinuesPastFailures(t *testing.T) {
	repo := newFakeAuthorRepo()
	bad := repo.addAuthor(2)
	good := repo.addAuthor(6)
	repo.authors[good].PublishedCount = 0
	repo.countErr[bad] = errors.New("row lock timeout")

	svc := NewAuthorService(repo)

	result, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)

	// Healthy author still converged despite the failing one
	assert.Equal(t, 6, repo.authors[good].PublishedCount)
}

func TestReconcileAllEmpty(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)

	result, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Failed)
}
