// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/dberr"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
)

func init() {
	dberr.Register("account_username_key", dberr.Violation{Field: FieldUsername, Message: MsgDuplicateUsername})
	dberr.Register("account_email_key", dberr.Violation{Field: FieldEmail, Message: MsgDuplicateEmail})
}

const resourceUser = "User"

// # User Repository

// PostgresUserRepository implements [UserRepository] over users.account.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// ScanUser reads one users.account row selected in [schema.UserAccountTable.Columns] order.
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := ScanUser(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := ScanUser(repository.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

/*
Create persists a new account into the users.account table.

Parameters:
  - ctx: context.Context
  - user: *User (ID and timestamps are filled from RETURNING)

Returns:
  - error: Field-level VALIDATION_ERROR on account_username_key or account_email_key
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FullName,
		schema.UserAccount.Password, schema.UserAccount.IsActive, schema.UserAccount.IsStaff,
		schema.UserAccount.IsSuperuser,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, resourceUser)
}

func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FullName,
		schema.UserAccount.Password, schema.UserAccount.IsActive, schema.UserAccount.IsStaff,
		schema.UserAccount.IsSuperuser, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
	).Scan(&user.UpdatedAt)

	return dberr.Wrap(err, resourceUser)
}

func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	if _, err := repository.db.Exec(ctx, query, id, at); err != nil {
		return fmt.Errorf("postgres_user_repo_touch_last_login_failed: %w", err)
	}
	return nil
}

// # Token Repository

// PostgresTokenRepository implements [TokenRepository] over users.authtoken.
type PostgresTokenRepository struct {
	db postgres.DBTX
}

func NewTokenRepository(db postgres.DBTX) *PostgresTokenRepository {
	return &PostgresTokenRepository{db: db}
}

/*
GetOrCreate inserts candidate unless the user already holds a key.

The unique index on userid arbitrates concurrent logins: the losing INSERT
does nothing and the statement falls through to the stored key.

Parameters:
  - ctx: context.Context
  - userID: int64
  - candidate: string

Returns:
  - string: The key bound to the user
  - error: Execution errors
*/
func (repository *PostgresTokenRepository) GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error) {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %[1]s (%[2]s, %[3]s) VALUES ($1, $2)
			ON CONFLICT (%[3]s) DO NOTHING
			RETURNING %[2]s
		)
		SELECT %[2]s FROM inserted
		UNION ALL
		SELECT %[2]s FROM %[1]s WHERE %[3]s = $2
		LIMIT 1`,
		schema.UserAuthToken.Table, schema.UserAuthToken.Key, schema.UserAuthToken.UserID,
	)

	var key string
	err := repository.db.QueryRow(ctx, query, candidate, userID).Scan(&key)

	// A concurrent insert that commits after this statement's snapshot makes
	// both branches empty. The row is committed by now, so read it directly.
	if errors.Is(err, pgx.ErrNoRows) {
		lookup := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			schema.UserAuthToken.Key, schema.UserAuthToken.Table, schema.UserAuthToken.UserID)
		err = repository.db.QueryRow(ctx, lookup, userID).Scan(&key)
	}
	if err != nil {
		return "", fmt.Errorf("postgres_token_repo_get_or_create_failed: %w", dberr.Wrap(err, "Token"))
	}
	return key, nil
}

func (repository *PostgresTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAuthToken.Table, schema.UserAuthToken.UserID)

	if _, err := repository.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("postgres_token_repo_delete_failed: %w", err)
	}
	return nil
}

func (repository *PostgresTokenRepository) FindUserID(ctx context.Context, key string) (int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserAuthToken.UserID, schema.UserAuthToken.Table, schema.UserAuthToken.Key)

	var userID int64
	err := repository.db.QueryRow(ctx, query, key).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.NotFound("Token")
	}
	if err != nil {
		return 0, fmt.Errorf("postgres_token_repo_find_failed: %w", err)
	}
	return userID, nil
}
