// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/users/auth"
)

var accountColumns = []string{
	"id", "username", "email", "fullname", "passwordhash", "isactive",
	"isstaff", "issuperuser", "lastloginat", "createdat", "updatedat",
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := auth.NewUserRepository(mock)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, username, email, .* FROM users.account WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(7), "alice", "alice@x.com", "Alice A", "$2a$hash", true, false, false, nil, created, created))

	mock.ExpectQuery(`SELECT .* FROM users.account WHERE username = \$1`).
		WithArgs("mallory").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "$2a$hash", user.PasswordHash)
	assert.False(t, user.LastLogin.Valid)

	_, err = repo.FindByUsername(context.Background(), "mallory")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestUserRepository_CreateDuplicate maps each unique constraint to its field.
*/
func TestUserRepository_CreateDuplicate(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		field      string
		message    string
	}{
		{"username", "account_username_key", auth.FieldUsername, auth.MsgDuplicateUsername},
		{"email", "account_email_key", auth.FieldEmail, auth.MsgDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`INSERT INTO users.account`).
				WithArgs("alice", "alice@x.com", "", "hash", true, false, false).
				WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: tt.constraint})

			err = auth.NewUserRepository(mock).Create(context.Background(), &auth.User{
				Username:     "alice",
				Email:        "alice@x.com",
				PasswordHash: "hash",
				IsActive:     true,
			})

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
			assert.Equal(t, tt.message, ae.Details[0].Message)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO users.account .* RETURNING id, createdat, updatedat`).
		WithArgs("root", "root@example.gov", "Root", "hash", true, true, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "createdat", "updatedat"}).AddRow(int64(1), now, now))

	user := &auth.User{
		Username: "root", Email: "root@example.gov", FullName: "Root", PasswordHash: "hash",
		IsActive: true, IsStaff: true, IsSuperuser: true,
	}
	require.NoError(t, auth.NewUserRepository(mock).Create(context.Background(), user))

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetOrCreate(t *testing.T) {
	t.Run("inserted_or_existing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`WITH inserted AS \(\s*INSERT INTO users.authtoken .* ON CONFLICT \(userid\) DO NOTHING`).
			WithArgs("candidatekey", int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"key"}).AddRow("existingkey"))

		key, err := auth.NewTokenRepository(mock).GetOrCreate(context.Background(), 7, "candidatekey")
		require.NoError(t, err)
		assert.Equal(t, "existingkey", key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent_insert_falls_back_to_lookup", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`WITH inserted AS`).
			WithArgs("candidatekey", int64(7)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(`SELECT key FROM users.authtoken WHERE userid = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"key"}).AddRow("winnerkey"))

		key, err := auth.NewTokenRepository(mock).GetOrCreate(context.Background(), 7, "candidatekey")
		require.NoError(t, err)
		assert.Equal(t, "winnerkey", key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTokenRepository_FindUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := auth.NewTokenRepository(mock)

	mock.ExpectQuery(`SELECT userid FROM users.authtoken WHERE key = \$1`).
		WithArgs("goodkey").
		WillReturnRows(pgxmock.NewRows([]string{"userid"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT userid FROM users.authtoken WHERE key = \$1`).
		WithArgs("badkey").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT userid FROM users.authtoken WHERE key = \$1`).
		WithArgs("brokenkey").
		WillReturnError(errors.New("connection reset"))

	userID, err := repo.FindUserID(context.Background(), "goodkey")
	require.NoError(t, err)
	assert.Equal(t, int64(3), userID)

	_, err = repo.FindUserID(context.Background(), "badkey")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = repo.FindUserID(context.Background(), "brokenkey")
	assert.Error(t, err)
	assert.Nil(t, apperr.As(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_DeleteByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM users.authtoken WHERE userid = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, auth.NewTokenRepository(mock).DeleteByUser(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
