// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package crud is the generic record repository behind every portal resource.

A record type describes itself once as a [Resource]: its table, columns,
scan targets, validation and stamping rules. [Store], [Service] and
[Handler] then provide list, get, create, replace, patch and delete with
uniform pagination, error mapping and access policy.

Architecture:

  - Store: parameterised SQL over [postgres.DBTX].
  - Service: validation, creator stamping, read-only fields, list caching.
  - Handler: chi routes gated per action by a [Policy].
*/
package crud

import (
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

// Resource describes how a record type T maps onto one table.
type Resource[T any] struct {
	// Name is the singular display name used in "<Name> not found".
	Name string
	// Event prefixes log events, e.g. "notice" yields "notice_created".
	Event string

	Table    string
	IDColumn string
	// Columns are written on insert and update, in [Resource.Values] order.
	Columns []string
	// ReadOnlyColumns are filled by the database and only ever read back.
	ReadOnlyColumns []string
	// OrderBy is the list ordering; defaults to the id column descending.
	OrderBy string

	// Key returns the address of the record's id.
	Key func(*T) *int64
	// Values returns the values for Columns.
	Values func(*T) []any
	// Targets returns scan destinations for the id, Columns and ReadOnlyColumns.
	Targets func(*T) []any

	// Validate adds field rules. Optional.
	Validate func(*T, *validate.Validator)
	// Stamp sets author fields on create. principal may be nil. Optional.
	Stamp func(item *T, principal *sec.Principal)
	// Keep copies fields clients may not change from stored into updated. Optional.
	Keep func(updated, stored *T)
}

func (resource Resource[T]) selectColumns() []string {
	columns := make([]string, 0, 1+len(resource.Columns)+len(resource.ReadOnlyColumns))
	columns = append(columns, resource.IDColumn)
	columns = append(columns, resource.Columns...)
	return append(columns, resource.ReadOnlyColumns...)
}

func (resource Resource[T]) orderBy() string {
	if resource.OrderBy != "" {
		return resource.OrderBy
	}
	return resource.IDColumn + " DESC"
}
