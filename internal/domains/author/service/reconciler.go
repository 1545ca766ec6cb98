package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MiguelRodac/api-books/internal/domains/author/model"
)

// ReconcileOne recomputes published_count cho một author từ bảng books.
// Recompute chứ không increment - chạy lại bao nhiêu lần cũng ra cùng kết quả.
func (s *authorService) ReconcileOne(ctx context.Context, authorID uuid.UUID) error {
	count, err := s.repo.CountBooks(ctx, authorID)
	if err != nil {
		return err
	}
	return s.repo.UpdatePublishedCount(ctx, authorID, count)
}

// ReconcileAll quét toàn bộ authors và recompute từng counter.
// Lỗi của một author không dừng cả batch - log rồi đi tiếp.
func (s *authorService) ReconcileAll(ctx context.Context) (model.ReconcileResult, error) {
	var result model.ReconcileResult

	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := s.ReconcileOne(ctx, id); err != nil {
			result.Failed++
			log.Error().
				Err(err).
				Str("author_id", id.String()).
				Msg("reconcile published count failed")
			continue
		}
		result.Updated++
	}

	log.Info().
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Msg("published count reconciliation finished")

	return result, nil
}
