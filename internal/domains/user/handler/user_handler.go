package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MiguelRodac/api-books/internal/domains/user/model"
	"github.com/MiguelRodac/api-books/internal/domains/user/service"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/internal/shared/middleware"
	"github.com/MiguelRodac/api-books/internal/shared/response"
)

type UserHandler struct {
	service service.Service
}

func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/register
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest

	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", resp)
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/login
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest

	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", model.TokenResponse{Token: token})
}

// ════════════════════════════════════════════════════════════════
// AUTH: GET /v1/auth/me [guarded]
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Me(c *gin.Context) {
	userID := currentUserID(c)

	u, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Current user", u)
}

// ════════════════════════════════════════════════════════════════
// AUTH: GET /v1/auth/refresh [guarded]
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Refresh(c *gin.Context) {
	userID := currentUserID(c)

	token, err := h.service.Refresh(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", model.TokenResponse{Token: token})
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/logout [guarded]
// ════════════════════════════════════════════════════════════════

// Logout chỉ acknowledge - không có server-side revocation,
// client tự bỏ token (known limitation, documented in pkg/jwt)
func (h *UserHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/users [guarded]
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Index(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "List of users", users)
}

// ════════════════════════════════════════════════════════════════
// CRUD: GET /v1/users/:id_user [guarded]
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_user"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid user id"))
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User found", u)
}

// ════════════════════════════════════════════════════════════════
// CRUD: PUT /v1/users/:id_user [guarded]
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_user"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid user id"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body").WithDetail(err.Error()))
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", u)
}

// ════════════════════════════════════════════════════════════════
// CRUD: DELETE /v1/users/:id_user [guarded]
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id_user"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid user id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", nil)
}

// currentUserID lấy subject đã được Auth gate set vào context
func currentUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(middleware.CtxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
