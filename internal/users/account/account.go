// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account exposes the user directory: listing, provisioning, editing and
deactivating portal accounts.

Credentials are never handled here directly. Creation and updates go through
[auth.CredentialStore] so hashing, normalisation and privilege checks stay in
one place; this package adds the listing and deactivation the directory needs.

# Architecture

  - Entities: [auth.User] stored, [auth.Profile] rendered.
  - Removal: DELETE deactivates the account and revokes its key. Rows are
    never hard-deleted because content rows cascade from users.account.
*/
package account

import (
	"context"

	"github.com/taibuivan/civicportal/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for the user directory.
type Repository interface {
	/*
		List returns one page of accounts, newest first, and the total count.

		Parameters:
		  - ctx: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*auth.User: Page of accounts
		  - int: Total number of accounts
		  - error: Storage failures
	*/
	List(ctx context.Context, limit, offset int) ([]*auth.User, int, error)

	/*
		FindByID retrieves one account.

		Returns:
		  - error: apperr.NotFound when the id does not exist
	*/
	FindByID(ctx context.Context, id int64) (*auth.User, error)

	/*
		Deactivate clears the active flag of an account.

		Parameters:
		  - ctx: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound when no row matched
	*/
	Deactivate(ctx context.Context, id int64) error
}

// # Inputs

// CreateInput is the body accepted by POST /users.
//
// Omitted is_active defaults to true, matching self-registration.
type CreateInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Password    string `json:"password"`
	IsActive    *bool  `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}
