package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error type carried from the service layer up to
// the HTTP responder. HTTPCode and Err are never serialized.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain,omitempty"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// New builds a fresh AppError.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Re-exported stdlib helpers so callers don't need a second errors import.

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// =========================================================================
// Factories
// =========================================================================

// NotFound maps a missing resource to 404.
func NotFound(message string) *AppError {
	if message == "" {
		message = "No document found with that ID"
	}
	return New(CodeNotFound, "resource", message, http.StatusNotFound)
}

// WrapNotFound converts a repository not-found sentinel into a 404.
func WrapNotFound(err error, message string) *AppError {
	if message == "" {
		message = "No document found with that ID"
	}
	return Wrap(err, CodeNotFound, "resource", message, http.StatusNotFound)
}

// ValidationError carries field-level validation failures (400).
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Invalid input data", http.StatusBadRequest).
		WithDetails(details)
}

// BadRequest is a generic 400 with a caller-supplied message.
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, "request", message, http.StatusBadRequest)
}

// Unauthorized is a 401 with a caller-supplied message.
func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// Forbidden is a 403.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "You don't have permission to perform this action"
	}
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// UnsupportedMedia rejects non-image uploads (415).
func UnsupportedMedia(message string) *AppError {
	return New(CodeUnsupportedMedia, "validation", message, http.StatusUnsupportedMediaType)
}

// AlreadyExists maps uniqueness conflicts; returned as 400 so clients see the
// same status the schema validators produce.
func AlreadyExists(message string) *AppError {
	return New(CodeAlreadyExists, "resource", message, http.StatusBadRequest)
}

// InternalError wraps an unexpected failure (500).
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Something went wrong", http.StatusInternalServerError)
}

// =========================================================================
// Predefined errors
// =========================================================================

var (
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = New(
		CodeInvalidCredentials,
		"auth",
		"Incorrect email or password",
		http.StatusUnauthorized,
	)

	// ErrInvalidToken covers malformed, forged and expired session tokens.
	ErrInvalidToken = New(
		CodeInvalidToken,
		"auth",
		"Invalid token. Please log in again",
		http.StatusUnauthorized,
	)

	// ErrNotLoggedIn is returned when a protected route is hit without a token.
	ErrNotLoggedIn = New(
		CodeUnauthorized,
		"auth",
		"You are not logged in. Please log in to get access",
		http.StatusUnauthorized,
	)

	// ErrStaleToken is returned when the password changed after token issuance.
	ErrStaleToken = New(
		CodeUnauthorized,
		"auth",
		"User recently changed the password. Please log in again",
		http.StatusUnauthorized,
	)

	// ErrUserGone is returned when the token's user no longer exists or was
	// deactivated.
	ErrUserGone = New(
		CodeUnauthorized,
		"auth",
		"The user belonging to this token no longer exists",
		http.StatusUnauthorized,
	)

	// ErrResetTokenInvalid covers unknown and expired password-reset tokens.
	ErrResetTokenInvalid = New(
		CodeBadRequest,
		"auth",
		"Token is invalid or has expired",
		http.StatusBadRequest,
	)

	// ErrEmailAlreadyExists is returned on signup with a taken email.
	ErrEmailAlreadyExists = New(
		CodeAlreadyExists,
		"auth",
		"This email address is already in use",
		http.StatusBadRequest,
	)

	// ErrDuplicateReview enforces one review per (tour, user) pair.
	ErrDuplicateReview = New(
		CodeAlreadyExists,
		"review",
		"You have already reviewed this tour",
		http.StatusBadRequest,
	)

	// ErrPasswordUpdateNotAllowed guards the generic user update path.
	ErrPasswordUpdateNotAllowed = New(
		CodeBadRequest,
		"user",
		"This route is not for password updates. Please use /updateMyPassword",
		http.StatusBadRequest,
	)
)
