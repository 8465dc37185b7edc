package services

import (
	"errors"
)

// 业务错误，handlers.MapError 负责翻译成 HTTP 状态码
var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("not authorized to perform this action")
	ErrDuplicateReview = errors.New("you have already reviewed this part")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// FieldError 字段级校验错误，400 响应里逐条返回
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 聚合一次请求的所有字段错误
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Errors[0].Field + " " + e.Errors[0].Message
}

// NewValidationError 构造单字段校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
