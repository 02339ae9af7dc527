// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/dberr"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/users/auth"
)

// # Repository Implementation

// PostgresRepository implements [Repository] over users.account.
//
// Single-row lookups are shared with the auth store.
type PostgresRepository struct {
	*auth.PostgresUserRepository

	db postgres.DBTX
}

// NewRepository creates a new Postgres implementation of the user directory.
func NewRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{
		PostgresUserRepository: auth.NewUserRepository(db),
		db:                     db,
	}
}

/*
List retrieves one page from users.account ordered by id descending.

Parameters:
  - ctx: context.Context
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Hydrated accounts, password hashes included
  - int: Total row count
  - error: Database execution failure
*/
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*auth.User, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.UserAccount.Table)
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT $1 OFFSET $2`,
		strings.Join(schema.UserAccount.Columns(), ", "), schema.UserAccount.Table, schema.UserAccount.ID)

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*auth.User, 0, limit)
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, total, nil
}

func (repository *PostgresRepository) Deactivate(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.IsActive, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_deactivate_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
