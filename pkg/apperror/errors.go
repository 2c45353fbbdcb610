package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error by how the caller is expected to react to it.
type Kind string

const (
	// KindValidation is raised before any remote call; the input needs fixing.
	KindValidation Kind = "validation"
	// KindRejected means the backend explicitly refused the credential.
	KindRejected Kind = "rejected"
	// KindTransient covers network/backend failures and timeouts; retry as is.
	KindTransient Kind = "transient"
	KindNotFound  Kind = "not_found"
	KindForbidden Kind = "forbidden"
	KindConflict  Kind = "conflict"
	KindAuth      Kind = "unauthorized"
	KindInternal  Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Retryable reports whether resubmitting the same input may succeed.
func (e *AppError) Retryable() bool {
	return e.Kind == KindTransient
}

// MsgInvalidData heads a validation error that lists several fields.
const MsgInvalidData = "Dados inválidos"

// Common errors
var (
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Acesso restrito a administradores"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Usuário ou senha inválidos"}
	ErrSessionExpired     = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Sessão expirada. Entre novamente."}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Sessão inválida. Entre novamente."}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: MsgInvalidData,
		Errors:  fieldErrors,
	}
}

// NewFieldError is a validation error for a single field.
func NewFieldError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewRejectedError reports an explicit refusal attached to one input field.
func NewRejectedError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindRejected,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewTransientError reports a failure that leaves user input intact for a retry.
func NewTransientError(message string) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindTransient,
		Message: message,
	}
}

// NewTimeoutError is a transient error caused by a bounded call running out of time.
func NewTimeoutError(message string) *AppError {
	return &AppError{
		Code:    http.StatusGatewayTimeout,
		Kind:    KindTransient,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
