package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MiguelRodac/api-books/internal/domains/book/model"
	"github.com/MiguelRodac/api-books/internal/domains/book/service"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/books [guarded]
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Index(c *gin.Context) {
	books, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "List of books", books)
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/books/:id_book [guarded]
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_book"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid book id"))
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book found", b)
}

// ════════════════════════════════════════════════════════════════
// CRUD: POST /v1/books [guarded]
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Store(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book created", b)
}

// ════════════════════════════════════════════════════════════════
// CRUD: PUT /v1/books/:id_book [guarded]
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_book"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid book id"))
		return
	}

	var req model.UpdateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book updated", b)
}

// ════════════════════════════════════════════════════════════════
// CRUD: DELETE /v1/books/:id_book [guarded]
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_book"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid book id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book deleted", nil)
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/authors/:id_author/books [guarded]
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) IndexByAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id_author"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid author id"))
		return
	}

	books, err := h.service.GetByAuthorID(c.Request.Context(), authorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "List of books", books)
}
