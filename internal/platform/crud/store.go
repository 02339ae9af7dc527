// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/dberr"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
)

/*
Repository is the persistence contract for one record type.

Methods:
  - List: one page plus the total row count.
  - Get: [apperr.NotFound] when the id does not exist.
  - Create, Update: write the record and scan database-set columns back into it.
  - Delete: [apperr.NotFound] when no row was removed.
*/
type Repository[T any] interface {
	List(ctx context.Context, limit, offset int) ([]*T, int, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// Store implements [Repository] over PostgreSQL.
type Store[T any] struct {
	db       postgres.DBTX
	resource Resource[T]

	listQuery   string
	countQuery  string
	getQuery    string
	insertQuery string
	updateQuery string
	deleteQuery string
}

// NewStore renders the resource's statements once.
func NewStore[T any](db postgres.DBTX, resource Resource[T]) *Store[T] {
	selected := strings.Join(resource.selectColumns(), ", ")

	insertPlaceholders := make([]string, len(resource.Columns))
	assignments := make([]string, len(resource.Columns))
	for index, column := range resource.Columns {
		insertPlaceholders[index] = fmt.Sprintf("$%d", index+1)
		assignments[index] = fmt.Sprintf("%s = $%d", column, index+2)
	}

	return &Store[T]{
		db:       db,
		resource: resource,
		listQuery: fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2`,
			selected, resource.Table, resource.orderBy()),
		countQuery: fmt.Sprintf(`SELECT count(*) FROM %s`, resource.Table),
		getQuery: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			selected, resource.Table, resource.IDColumn),
		insertQuery: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			resource.Table, strings.Join(resource.Columns, ", "), strings.Join(insertPlaceholders, ", "), selected),
		updateQuery: fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
			resource.Table, strings.Join(assignments, ", "), resource.IDColumn, selected),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, resource.Table, resource.IDColumn),
	}
}

func (store *Store[T]) List(ctx context.Context, limit, offset int) ([]*T, int, error) {
	var total int
	if err := store.db.QueryRow(ctx, store.countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, store.resource.Name)
	}

	rows, err := store.db.Query(ctx, store.listQuery, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, store.resource.Name)
	}
	defer rows.Close()

	items := make([]*T, 0, limit)
	for rows.Next() {
		item := new(T)
		if err := rows.Scan(store.resource.Targets(item)...); err != nil {
			return nil, 0, fmt.Errorf("postgres_%s_scan_failed: %w", store.resource.Event, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, store.resource.Name)
	}

	return items, total, nil
}

func (store *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	item := new(T)
	if err := store.db.QueryRow(ctx, store.getQuery, id).Scan(store.resource.Targets(item)...); err != nil {
		return nil, dberr.Wrap(err, store.resource.Name)
	}
	return item, nil
}

func (store *Store[T]) Create(ctx context.Context, item *T) error {
	err := store.db.QueryRow(ctx, store.insertQuery, store.resource.Values(item)...).Scan(store.resource.Targets(item)...)
	return dberr.Wrap(err, store.resource.Name)
}

func (store *Store[T]) Update(ctx context.Context, item *T) error {
	args := append([]any{*store.resource.Key(item)}, store.resource.Values(item)...)
	err := store.db.QueryRow(ctx, store.updateQuery, args...).Scan(store.resource.Targets(item)...)
	return dberr.Wrap(err, store.resource.Name)
}

func (store *Store[T]) Delete(ctx context.Context, id int64) error {
	tag, err := store.db.Exec(ctx, store.deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, store.resource.Name)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(store.resource.Name)
	}
	return nil
}
