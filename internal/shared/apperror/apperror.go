package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind phân loại error theo taxonomy cố định
// Mỗi kind map sang đúng 1 nhóm HTTP status
type Kind int

const (
	KindValidation   Kind = iota + 1 // 400/422 - malformed or missing input
	KindUnauthorized                 // 401 - missing/invalid/expired credential
	KindForbidden                    // 403 - authenticated but not permitted
	KindNotFound                     // 404 - referenced entity absent
	KindConflict                     // 409 - uniqueness violation
	KindInternal                     // 500 - unexpected
)

// Error là operational error duy nhất được phép chạm tới response pipeline
// Dispatch theo Kind, không theo type identity (không có class hierarchy)
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Detail     interface{} // structured detail (field errors, ids...) - optional
	Err        error       // wrapped cause, never exposed outside development
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail attach structured detail vào error (returns copy)
func (e *Error) WithDetail(detail interface{}) *Error {
	clone := *e
	clone.Detail = detail
	return &clone
}

// Wrap giữ nguyên kind/message nhưng gắn thêm cause
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// ========================================
// CONSTRUCTORS
// ========================================

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: message}
}

// Unprocessable dùng cho schema validation failures (422)
func Unprocessable(message string) *Error {
	return &Error{Kind: KindValidation, StatusCode: http.StatusUnprocessableEntity, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, StatusCode: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, StatusCode: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, StatusCode: http.StatusConflict, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, StatusCode: http.StatusInternalServerError, Message: message}
}

// ========================================
// CLASSIFICATION
// ========================================

// From coerce bất kỳ error nào về *Error
// Unrecognized errors thành KindInternal với generic message,
// cause được wrap lại để logging (không bao giờ ra wire ở production)
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return Internal("Internal server error").Wrap(err)
}

// IsKind kiểm tra error có thuộc kind cho trước không
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
