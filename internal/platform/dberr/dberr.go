// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies PostgreSQL failures into [apperr.AppError] values.
//
// Integrity violations raised by the schema are client errors: a duplicate
// username is a validation failure, not a 500. Anything unclassified is
// returned as [apperr.Internal] so the cause is logged but never shown.
package dberr

import (
	"errors"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
)

// Violation describes the client-facing field and message for one constraint.
type Violation struct {
	Field   string
	Message string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Violation{}
)

// Register maps a named constraint to a field-level message.
// Stores call it from init so migrations and messages stay side by side.
func Register(constraint string, violation Violation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[constraint] = violation
}

func lookup(constraint string) (Violation, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	violation, ok := registry[constraint]
	return violation, ok
}

// Wrap inspects a database error and converts it into an [apperr.AppError].
// resource names the entity for [apperr.NotFound].
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// Already classified further down the stack.
	if ae := apperr.As(err); ae != nil {
		return ae
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperr.Internal(err)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return classify(pgErr, "A record with this value already exists.")
	case pgerrcode.ForeignKeyViolation:
		return classify(pgErr, "Referenced record does not exist.")
	case pgerrcode.CheckViolation:
		return classify(pgErr, "Value is out of the allowed range.")
	case pgerrcode.NotNullViolation:
		field := pgErr.ColumnName
		if field == "" {
			field = "non_field_errors"
		}
		return apperr.FieldInvalid(field, "This field may not be null.")
	case pgerrcode.StringDataRightTruncationDataException, pgerrcode.InvalidTextRepresentation,
		pgerrcode.NumericValueOutOfRange, pgerrcode.InvalidDatetimeFormat:
		return apperr.ValidationError("Validation failed", apperr.FieldError{Field: "non_field_errors", Message: pgErr.Message})
	}

	return apperr.Internal(err)
}

func classify(pgErr *pgconn.PgError, fallback string) error {
	if violation, ok := lookup(pgErr.ConstraintName); ok {
		return apperr.FieldInvalid(violation.Field, violation.Message)
	}
	return apperr.FieldInvalid("non_field_errors", fallback)
}

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
