// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(ctx context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given, already normalised, username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		Create persists a brand-new account and fills its ID and timestamps.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: Field-level validation error on a duplicate username or email
	*/
	Create(ctx context.Context, user *User) error

	/*
		Update persists the profile fields, flags and password hash.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound, duplicate validation errors or persistence failures
	*/
	Update(ctx context.Context, user *User) error

	/*
		TouchLastLogin records a successful login.

		Parameters:
		  - ctx: context.Context
		  - id: int64
		  - at: time.Time

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// # Token Data Access

// TokenRepository stores the single API key bound to each account.
type TokenRepository interface {

	/*
		GetOrCreate returns the user's existing key, or stores candidate when none exists.
		Concurrent callers for the same user all receive the same key.

		Parameters:
		  - ctx: context.Context
		  - userID: int64
		  - candidate: string (freshly generated key)

		Returns:
		  - string: The key bound to the user
		  - error: Persistence failures
	*/
	GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error)

	/*
		DeleteByUser removes the user's key. Deleting a missing key is not an error.

		Parameters:
		  - ctx: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	DeleteByUser(ctx context.Context, userID int64) error

	/*
		FindUserID resolves a key to its owner.

		Parameters:
		  - ctx: context.Context
		  - key: string

		Returns:
		  - int64: Owner account ID
		  - error: apperr.NotFound or retrieval failures
	*/
	FindUserID(ctx context.Context, key string) (int64, error)
}

// # Session Data Access

// SessionRepository stores server-side sessions with a time-to-live.
type SessionRepository interface {

	/*
		Create stores a session under its raw id for ttl.

		Parameters:
		  - ctx: context.Context
		  - id: string (raw session id)
		  - session: *Session
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, id string, session *Session, ttl time.Duration) error

	/*
		Find returns the live session for id.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *Session: Stored session
		  - error: apperr.NotFound when unknown or expired
	*/
	Find(ctx context.Context, id string) (*Session, error)

	/*
		Delete removes the session. Deleting a missing session is not an error.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, id string) error
}
