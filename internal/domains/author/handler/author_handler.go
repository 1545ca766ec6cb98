package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/MiguelRodac/api-books/internal/domains/author/model"
	"github.com/MiguelRodac/api-books/internal/domains/author/service"
	"github.com/MiguelRodac/api-books/internal/shared"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/internal/shared/response"
)

type AuthorHandler struct {
	service     service.ServiceInterface
	asynqClient *asynq.Client
}

func NewAuthorHandler(svc service.ServiceInterface, asynqClient *asynq.Client) *AuthorHandler {
	return &AuthorHandler{
		service:     svc,
		asynqClient: asynqClient,
	}
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/authors [guarded]
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Index(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "List of authors", authors)
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/authors/:id_author [guarded]
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_author"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid author id"))
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author found", a)
}

// ════════════════════════════════════════════════════════════════
// CRUD: POST /v1/authors [guarded]
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Store(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Author created", a)
}

// ════════════════════════════════════════════════════════════════
// CRUD: PUT /v1/authors/:id_author [guarded]
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_author"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid author id"))
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author updated", a)
}

// ════════════════════════════════════════════════════════════════
// CRUD: DELETE /v1/authors/:id_author [guarded]
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_author"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid author id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author deleted", nil)
}

// ════════════════════════════════════════════════════════════════
// ADMIN: POST /v1/admin/reconcile [guarded]
// ════════════════════════════════════════════════════════════════

// TriggerReconcile enqueue batch reconcile thay vì chạy inline -
// worker xử lý, API trả về ngay
func (h *AuthorHandler) TriggerReconcile(c *gin.Context) {
	task := asynq.NewTask(shared.TypeReconcilePublishedCounts, nil)

	info, err := h.asynqClient.EnqueueContext(
		c.Request.Context(),
		task,
		asynq.Queue(shared.QueueAuthor),
	)
	if err != nil {
		response.Error(c, apperror.Internal("Failed to schedule reconciliation").Wrap(err))
		return
	}

	response.Success(c, http.StatusAccepted, "Reconciliation scheduled", gin.H{
		"task_id": info.ID,
		"queue":   info.Queue,
	})
}
