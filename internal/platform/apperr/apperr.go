// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for CivicPortal.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeAccountDisabled      = "ACCOUNT_DISABLED"
	CodeNotAuthenticated     = "NOT_AUTHENTICATED"
	CodePermissionDenied     = "PERMISSION_DENIED"
	CodeNotFound             = "NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the CivicPortal API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
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
	Details []FieldError `json:"errors,omitempty"`
}

// NonFieldErrors is the field name for failures that belong to the request as a whole.
const NonFieldErrors = "non_field_errors"

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

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// FieldInvalid is a shortcut for a single-field [ValidationError].
func FieldInvalid(field, message string) *AppError {
	return ValidationError("Validation failed", FieldError{Field: field, Message: message})
}

// AuthenticationFailed creates a 400 [AppError] for credentials that do not match an account.
func AuthenticationFailed(msg string) *AppError {
	return &AppError{
		Code:       CodeAuthenticationFailed,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    []FieldError{{Field: NonFieldErrors, Message: msg}},
	}
}

// AccountDisabled creates a 400 [AppError] for valid credentials on an inactive account.
func AccountDisabled() *AppError {
	const msg = "User account is disabled."
	return &AppError{
		Code:       CodeAccountDisabled,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    []FieldError{{Field: NonFieldErrors, Message: msg}},
	}
}

// NotAuthenticated creates a 401 [AppError] for requests that carry no usable identity.
func NotAuthenticated(msg string) *AppError {
	return &AppError{
		Code:       CodeNotAuthenticated,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotLoggedIn is the 400 flavour of [NotAuthenticated] returned by logout.
func NotLoggedIn() *AppError {
	return &AppError{
		Code:       CodeNotAuthenticated,
		Message:    "User was not logged in",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodePermissionDenied,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Notice") // Returns "Notice not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
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
