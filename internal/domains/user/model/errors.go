package model

import "github.com/MiguelRodac/api-books/internal/shared/apperror"

// Domain errors - tagged apperror values, dispatch theo Kind
var (
	ErrUserNotFound       = apperror.NotFound("User not found")
	ErrEmailAlreadyExists = apperror.Conflict("Email already exists")

	// Login failures: không expose email có tồn tại hay không
	ErrInvalidCredentials = apperror.Unauthorized("Invalid credentials")
	ErrPasswordMismatch   = apperror.Unauthorized("Password does not match")

	ErrUnauthorized = apperror.Unauthorized("Unauthorized")
)
