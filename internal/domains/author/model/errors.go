package model

import "github.com/MiguelRodac/api-books/internal/shared/apperror"

var (
	ErrAuthorNotFound = apperror.NotFound("Author not found")
	ErrDuplicateEmail = apperror.Conflict("Author email already exists")
)
