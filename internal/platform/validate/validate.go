// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Record definitions and services call it before anything touches storage, so
// a failed rule never leaves a partial write behind.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required.")
	}
	return v
}

// RequiredTime fails on a zero [time.Time].
func (v *Validator) RequiredTime(field string, value time.Time) *Validator {
	if value.IsZero() {
		v.add(field, "This field is required.")
	}
	return v
}

// RequiredID fails when a foreign key reference is not a positive id.
func (v *Validator) RequiredID(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, "This field is required.")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Ensure this field has at least %d characters.", min))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address.
// Display-name forms such as "Jane <jane@example.com>" are rejected.
func (v *Validator) Email(field, value string) *Validator {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.add(field, "Enter a valid email address.")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("%q is not a valid choice. Choose one of: %s.", value, strings.Join(allowed, ", ")))
	return v
}

// NotBefore fails when both instants are set and later precedes earlier.
//
// # Example
//
//	v.NotBefore("expiry_date", notice.ExpiryDate, notice.PublishDate)
func (v *Validator) NotBefore(field string, later, earlier time.Time) *Validator {
	if !later.IsZero() && !earlier.IsZero() && later.Before(earlier) {
		v.add(field, "Must not be earlier than the start of the period.")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
