package main

import (
	"context"

	"github.com/hibiken/asynq"

	authorJob "github.com/MiguelRodac/api-books/internal/domains/author/job"
	"github.com/MiguelRodac/api-books/internal/shared"
	"github.com/MiguelRodac/api-books/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reconcilePublishedCounts func(ctx context.Context, t *asynq.Task) error
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reconcilePublishedCounts: authorJob.ReconcilePublishedCountsHandler(c.AuthorService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeReconcilePublishedCounts, h.reconcilePublishedCounts)
}
