package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Respond 统一的成功响应
func Respond(c *gin.Context, code int, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["success"] = true
	c.JSON(code, obj)
}

// Fail 统一的失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

// FailValidation 字段级校验错误，400 + 逐条字段信息
func FailValidation(c *gin.Context, errs []services.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// MapError 把业务错误翻译为 HTTP 响应。
// 未识别的错误一律 500，不向外暴露内部细节。
func MapError(c *gin.Context, log logger.ILogger, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		FailValidation(c, vErr.Errors)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		Fail(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, services.ErrForbidden):
		Fail(c, http.StatusForbidden, "Not authorized to perform this action")
	case errors.Is(err, services.ErrDuplicateReview):
		Fail(c, http.StatusBadRequest, "You have already reviewed this part")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Fail(c, http.StatusBadRequest, "Duplicate value for a unique field")
	case errors.Is(err, services.ErrInvalidToken):
		Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	default:
		log.Error("unhandled error", logger.String("path", c.Request.URL.Path), logger.Error(err))
		Fail(c, http.StatusInternalServerError, "Server error")
	}
}

// BindJSON 绑定并校验请求体，失败时直接写出 400 并返回 false
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			fieldErrs := make([]services.FieldError, 0, len(vErrs))
			for _, fe := range vErrs {
				fieldErrs = append(fieldErrs, services.FieldError{
					Field:   lowerFirst(fe.Field()),
					Message: validationMessage(fe),
				})
			}
			FailValidation(c, fieldErrs)
			return false
		}
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
