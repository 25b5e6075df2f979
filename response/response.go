package response

import (
	"time"

	"shrinklink/internal/apperrors"
)

// Response is the generic API envelope.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PageResponse wraps a paged listing.
type PageResponse[T any] struct {
	Page      int `json:"page"`
	Size      int `json:"size"`
	TotalPage int `json:"totalPage"`
	Total     int `json:"total"`
	List      []T `json:"list"`
}

// OK builds a success response.
func OK[T any](data T, message string) *Response[T] {
	return &Response[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Error builds a failure response with a plain message.
func Error(message string) *Response[any] {
	return &Response[any]{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ErrorFromAppError builds a failure response carrying the error kind.
// message is the already-localized text to show the caller.
func ErrorFromAppError(err *apperrors.AppError, message string) *Response[any] {
	return &Response[any]{
		Success:   false,
		Code:      string(err.Kind),
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
