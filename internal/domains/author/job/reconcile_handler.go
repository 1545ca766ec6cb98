package job

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/MiguelRodac/api-books/internal/domains/author/service"
	"github.com/MiguelRodac/api-books/pkg/logger"
)

// ReconcilePublishedCountsHandler chạy batch recompute cho toàn bộ authors.
// Payload rỗng - job luôn quét hết, không cần tham số.
func ReconcilePublishedCountsHandler(reconciler service.Reconciler) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		result, err := reconciler.ReconcileAll(ctx)
		if err != nil {
			return err // Lỗi list authors, retry lại
		}

		logger.Info("Reconcile job completed", map[string]interface{}{
			"updated": result.Updated,
			"failed":  result.Failed,
		})
		return nil
	}
}
