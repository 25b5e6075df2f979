package apperrors

import (
	"net/http"
)

// Kind is the machine-readable error category carried alongside the HTTP code.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindInsecureScheme     Kind = "InsecureScheme"
	KindRateLimited        Kind = "RateLimited"
	KindInvalidAlias       Kind = "InvalidAlias"
	KindAliasTaken         Kind = "AliasTaken"
	KindUnreachableURL     Kind = "UnreachableUrl"
	KindCodeSpaceExhausted Kind = "CodeSpaceExhausted"
	KindNotFound           Kind = "NotFound"
	KindExpired            Kind = "Expired"
	KindPersistence        Kind = "PersistenceError"
	KindUnauthorized       Kind = "Unauthorized"
)

// AppError is the error type surfaced to the global error middleware.
// MessageKey, when set, is localized before Message is sent to the client.
type AppError struct {
	Code       int
	Kind       Kind
	MessageKey string
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.MessageKey
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode builds a generic error with an explicit HTTP status.
func WithCode(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// keyed builds an error whose message is resolved through i18n.
func keyed(code int, kind Kind, messageKey string) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		MessageKey: messageKey,
	}
}

func ValidationError(message string) *AppError {
	return WithCode(http.StatusBadRequest, KindValidation, message)
}

// ValidationKeyed wraps a validation failure identified by an i18n key.
func ValidationKeyed(messageKey string) *AppError {
	return keyed(http.StatusBadRequest, KindValidation, messageKey)
}

func ValidationErrorDefault() *AppError {
	return keyed(http.StatusBadRequest, KindValidation, "error.validation")
}

func InsecureScheme() *AppError {
	return keyed(http.StatusBadRequest, KindInsecureScheme, "error.insecure_scheme")
}

func RateLimited() *AppError {
	return keyed(http.StatusTooManyRequests, KindRateLimited, "error.rate_limited")
}

func InvalidAlias() *AppError {
	return keyed(http.StatusBadRequest, KindInvalidAlias, "error.invalid_alias")
}

func AliasTaken() *AppError {
	return keyed(http.StatusConflict, KindAliasTaken, "error.alias_taken")
}

// UnreachableURL carries the checker's reason verbatim.
func UnreachableURL(reason string) *AppError {
	return WithCode(http.StatusUnprocessableEntity, KindUnreachableURL, reason)
}

func CodeSpaceExhausted() *AppError {
	return keyed(http.StatusInternalServerError, KindCodeSpaceExhausted, "error.code_space_exhausted")
}

func NotFound() *AppError {
	return keyed(http.StatusNotFound, KindNotFound, "error.not_found")
}

func GroupNotFound() *AppError {
	return keyed(http.StatusNotFound, KindNotFound, "error.group_not_found")
}

func Expired() *AppError {
	return keyed(http.StatusGone, KindExpired, "error.link_expired")
}

func PersistenceError(cause error) *AppError {
	return &AppError{
		Code:       http.StatusInternalServerError,
		Kind:       KindPersistence,
		MessageKey: "error.persistence",
		Cause:      cause,
	}
}

func Unauthorized() *AppError {
	return keyed(http.StatusForbidden, KindUnauthorized, "error.unauthorized")
}

func Unauthenticated() *AppError {
	return keyed(http.StatusUnauthorized, KindUnauthorized, "error.unauthenticated")
}
