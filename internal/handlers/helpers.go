// Package handlers implements the HTTP layer of the Count Coins API. Handlers
// bind and validate requests, call into services, and shape the JSON envelope.
package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "countcoins/internal/errors"
	"countcoins/internal/middleware"
	"countcoins/internal/pagination"
)

// getUserID reads the authenticated user ID set by the auth middleware.
func getUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parsePathID parses a numeric :id path parameter.
func parsePathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Invalid %s", name))
	}
	return uint(id), nil
}

// respondSuccess writes the success envelope. message is omitted when empty.
func respondSuccess(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondPage writes the success envelope with pagination metadata.
func respondPage(c *gin.Context, status int, data interface{}, meta pagination.Meta) {
	c.JSON(status, gin.H{"success": true, "data": data, "pagination": meta})
}

// respondWithError writes the error envelope for an AppError, or a generic
// internal error otherwise. The raw error is attached to the context so the
// error middleware can log it.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.Abort()
		c.JSON(appErr.StatusCode, gin.H{"success": false, "error": appErr.Message})
		return
	}

	c.Abort()
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"success": false,
		"error":   apperrors.ErrInternalServer.Message,
	})
}

// bindingError converts Gin binding failures into a 400 AppError with a
// readable per-field message.
func bindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldErrorMessage(fe))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "transaction_type":
		return fmt.Sprintf("%s must be income or expense", field)
	case "transaction_category":
		return fmt.Sprintf("%s must be needs, wants, or savings", field)
	case "budget_rule":
		return fmt.Sprintf("%s must be a known budget rule", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date format, expected RFC 3339 or YYYY-MM-DD")
}
