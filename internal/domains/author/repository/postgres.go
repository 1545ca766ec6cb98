package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MiguelRodac/api-books/internal/domains/author/model"
	"github.com/MiguelRodac/api-books/pkg/cache"
)

// postgresRepository implements RepositoryInterface
// Uses pgxpool for PostgreSQL and Redis for read caching
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

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	authorListCacheKey   = "authors:list"
	cacheTTL             = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, email, bio, published_count)
        VALUES ($1, $2, $3, 0)
        RETURNING id, name, email, bio, published_count, created_at, updated_at
    `

	var created model.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Email, a.Bio).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.Bio,
		&created.PublishedCount,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, model.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateList(ctx)

	return &created, nil
}

// GetByID retrieves author by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `
        SELECT id, name, email, bio, published_count, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Bio,
		&a.PublishedCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT id, name, email, bio, published_count, created_at, updated_at
        FROM authors
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Bio,
			&a.PublishedCount, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// Update persists name/email/bio - published_count không nằm trong update này
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET name = $2, email = $3, bio = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING id, name, email, bio, published_count, created_at, updated_at
    `

	var updated model.Author
	err := r.pool.QueryRow(ctx, query, a.ID, a.Name, a.Email, a.Bio).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Email,
		&updated.Bio,
		&updated.PublishedCount,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx, a.ID)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author exists: %w", err)
	}
	return exists, nil
}

// ========================================
// COUNTER RECONCILIATION PRIMITIVES
// ========================================

// CountBooks đếm từ books collection - authoritative source của counter
func (r *postgresRepository) CountBooks(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books for author: %w", err)
	}
	return count, nil
}

// UpdatePublishedCount ghi count đã tính sẵn - single-row write,
// last-writer-wins an toàn vì mọi writer đều recompute từ cùng source
func (r *postgresRepository) UpdatePublishedCount(ctx context.Context, authorID uuid.UUID, count int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE authors SET published_count = $2, updated_at = NOW() WHERE id = $1`,
		authorID, count,
	)
	if err != nil {
		return fmt.Errorf("failed to update published count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidate(ctx, authorID)
	return nil
}

func (r *postgresRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM authors ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list author ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan author id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ========================================
// CACHE INVALIDATION
// ========================================

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id.String(), authorListCacheKey)
}

func (r *postgresRepository) invalidateList(ctx context.Context) {
	_ = r.cache.Delete(ctx, authorListCacheKey)
}
