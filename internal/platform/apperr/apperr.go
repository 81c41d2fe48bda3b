// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package apperr defines the error type every service returns to the HTTP layer.

An [AppError] pairs a machine-readable code with a client-safe message and
the HTTP status it maps to. Storage and collaborator errors are wrapped into
one before they leave a service, so respond.Error never has to guess.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Codes

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeDuplicateUsername   = "DUPLICATE_USERNAME"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeMissingToken        = "MISSING_TOKEN"
	CodeMalformedToken      = "MALFORMED_TOKEN"
	CodeExpiredToken        = "EXPIRED_TOKEN"
	CodeInvalidSignature    = "INVALID_SIGNATURE"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeRateLimited         = "RATE_LIMITED"
	CodeCollaboratorFailure = "COLLABORATOR_FAILURE"
	CodeInternal            = "INTERNAL_ERROR"
)

// TokenRejectedMessage is shared by every token failure so clients cannot tell
// which check failed.
const TokenRejectedMessage = "Invalid or expired token"

// AppError is the canonical error type for the Travelpack API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients.
// Diagnostic is the one exception: it carries upstream collaborator detail that
// is deliberately surfaced.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
	// Diagnostic is free-form upstream detail returned with collaborator failures.
	Diagnostic string `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// It is also the answer for resources that exist but belong to someone else.
//
// Example:
//
//	apperr.NotFound("Trip") // Returns "Trip not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError] with an explicit code.
func Unauthorized(code, msg string) *AppError {
	return &AppError{
		Code:       code,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenRejected creates a 401 [AppError] for a failed token check. The code
// differs per failure kind; the message never does.
func TokenRejected(code string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    TokenRejectedMessage,
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// InvalidCredentials creates the 401 [AppError] returned for any failed login.
func InvalidCredentials() *AppError {
	return Unauthorized(CodeInvalidCredentials, "Invalid username or password")
}

// DuplicateUsername creates the 400 [AppError] returned when a username is taken.
func DuplicateUsername() *AppError {
	return &AppError{
		Code:       CodeDuplicateUsername,
		Message:    "Username already exists",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Conflict creates a 409 [AppError] for unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// CollaboratorFailure creates a 500 [AppError] for a failed or unparseable
// generative-model call. The upstream error text is returned as details.
func CollaboratorFailure(msg string, cause error) *AppError {
	appError := &AppError{
		Code:       CodeCollaboratorFailure,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
	if cause != nil {
		appError.Diagnostic = cause.Error()
	}
	return appError
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
