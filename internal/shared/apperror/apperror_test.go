package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryKindAndStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   Kind
		status int
	}{
		{Validation("bad input"), KindValidation, http.StatusBadRequest},
		{Unprocessable("bad schema"), KindValidation, http.StatusUnprocessableEntity},
		{Unauthorized("no token"), KindUnauthorized, http.StatusUnauthorized},
		{Forbidden("not allowed"), KindForbidden, http.StatusForbidden},
		{NotFound("missing"), KindNotFound, http.StatusNotFound},
		{Conflict("duplicate"), KindConflict, http.StatusConflict},
		{Internal("boom"), KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.err.Kind, tc.err.Message)
		assert.Equal(t, tc.status, tc.err.StatusCode, tc.err.Message)
	}
}

func TestFromPassesThroughTaggedErrors(t *testing.T) {
	orig := NotFound("Author not found")

	got := From(orig)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "Author not found", got.Message)
}

func TestFromUnwrapsNestedTaggedError(t *testing.T) {
	orig := Conflict("Email already exists")
	wrapped := fmt.Errorf("register: %w", orig)

	got := From(wrapped)
	assert.Equal(t, KindConflict, got.Kind)
	assert.Equal(t, "Email already exists", got.Message)
}

func TestFromCoercesUnknownErrorsToInternal(t *testing.T) {
	cause := errors.New("pq: connection refused")

	got := From(cause)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	// Generic message on the outside, cause kept for logging
	assert.Equal(t, "Internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestFromNil(t *testing.T) {
	assert.Nil(t, From(nil))
}

func TestWithDetailReturnsCopy(t *testing.T) {
	base := Unprocessable("Validation failed")
	detailed := base.WithDetail(map[string]string{"email": "invalid format"})

	assert.Nil(t, base.Detail)
	assert.NotNil(t, detailed.Detail)
	assert.Equal(t, base.Kind, detailed.Kind)
}

func TestWrapKeepsMessageAndKind(t *testing.T) {
	cause := errors.New("timeout")
	wrapped := Internal("Internal server error").Wrap(cause)

	assert.Equal(t, KindInternal, wrapped.Kind)
	assert.Equal(t, "Internal server error", wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "timeout")
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Unauthorized("Invalid token"))

	assert.True(t, IsKind(err, KindUnauthorized))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}
