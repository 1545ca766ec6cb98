package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MiguelRodac/api-books/internal/domains/book/model"
	"github.com/MiguelRodac/api-books/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	bookListCacheKey   = "books:list"
	cacheTTL           = 15 * time.Minute
)

const bookColumns = `id, title, description, published_at, available, author_id, created_at, updated_at`

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.PublishedAt,
		&b.Available,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, description, published_at, available, author_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + bookColumns

	var created model.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.Description, b.PublishedAt, b.Available, b.AuthorID,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.invalidateList(ctx)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	err := scanBook(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return &b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresRepository) GetByAuthorID(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = $1 ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        UPDATE books
        SET title = $2, description = $3, published_at = $4, available = $5, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + bookColumns

	var updated model.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.ID, b.Title, b.Description, b.PublishedAt, b.Available,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidate(ctx, b.ID)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id.String(), bookListCacheKey)
}

func (r *postgresRepository) invalidateList(ctx context.Context) {
	_ = r.cache.Delete(ctx, bookListCacheKey)
}
