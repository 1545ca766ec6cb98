package model

import "github.com/MiguelRodac/api-books/internal/shared/apperror"

var (
	ErrBookNotFound = apperror.NotFound("Book not found")
)
