// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/crud"
)

func TestStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := crud.NewStore(mock, widgetResource)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM test.widget`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT widgetid, name, owner, createdby FROM test.widget ORDER BY widgetid DESC LIMIT $1 OFFSET $2`)).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"widgetid", "name", "owner", "createdby"}).
			AddRow(int64(2), "beta", nil, int64(7)).
			AddRow(int64(1), "alpha", int64(3), int64(7)))

	items, total, err := store.List(context.Background(), 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "beta", items[0].Name)
	assert.False(t, items[0].Owner.Valid)
	assert.Equal(t, int64(3), items[1].Owner.Int64)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(mock pgxmock.PgxPoolIface)
		status int
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM test.widget WHERE widgetid = \$1`).
					WithArgs(int64(5)).
					WillReturnRows(pgxmock.NewRows([]string{"widgetid", "name", "owner", "createdby"}).
						AddRow(int64(5), "gamma", nil, int64(1)))
			},
		},
		{
			name: "missing",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM test.widget WHERE widgetid = \$1`).
					WithArgs(int64(5)).
					WillReturnError(pgx.ErrNoRows)
			},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)
			item, err := crud.NewStore(mock, widgetResource).Get(context.Background(), 5)

			if tt.status != 0 {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.status, ae.HTTPStatus)
				assert.Equal(t, "Widget not found", ae.Message)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "gamma", item.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	item := &widget{Name: "delta", CreatedBy: 9}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO test.widget (name, owner, createdby) VALUES ($1, $2, $3) RETURNING widgetid, name, owner, createdby`)).
		WithArgs("delta", pgtype.Int8{}, int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"widgetid", "name", "owner", "createdby"}).
			AddRow(int64(11), "delta", nil, int64(9)))

	require.NoError(t, crud.NewStore(mock, widgetResource).Create(context.Background(), item))
	assert.Equal(t, int64(11), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO test.widget`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "widget_name_key"})

	err = crud.NewStore(mock, widgetResource).Create(context.Background(), &widget{Name: "dup"})

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	item := &widget{ID: 4, Name: "renamed", CreatedBy: 2}

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE test.widget SET name = $2, owner = $3, createdby = $4 WHERE widgetid = $1 RETURNING widgetid, name, owner, createdby`)).
		WithArgs(int64(4), "renamed", pgtype.Int8{}, int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"widgetid", "name", "owner", "createdby"}).
			AddRow(int64(4), "renamed", nil, int64(2)))

	assert.NoError(t, crud.NewStore(mock, widgetResource).Update(context.Background(), item))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  bool
	}{
		{"deleted", 1, false},
		{"missing", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM test.widget WHERE widgetid = $1`)).
				WithArgs(int64(3)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err = crud.NewStore(mock, widgetResource).Delete(context.Background(), 3)
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
