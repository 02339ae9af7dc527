// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
	"github.com/taibuivan/civicportal/pkg/pointer"
)

// PasswordHasher is the one-way password transform used by [CredentialStore].
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
	// Burn spends one verification's worth of work without a stored hash.
	Burn(plain string)
}

// CredentialStore owns account creation, credential checks and account updates.
// It is the only component that ever sees a plain-text password.
type CredentialStore struct {
	users  UserRepository
	hasher PasswordHasher
}

func NewCredentialStore(users UserRepository, hasher PasswordHasher) *CredentialStore {
	return &CredentialStore{users: users, hasher: hasher}
}

// NewUser carries the fields of an account being created.
type NewUser struct {
	Username string
	Email    string
	FullName string
	Password string
}

// Flags are the authorization flags of an account.
type Flags struct {
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

// UserUpdate is a partial account update. Nil fields keep their stored value.
type UserUpdate struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FullName    *string `json:"full_name"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// # Account Creation

// CreateUser creates an active, unprivileged account.
func (store *CredentialStore) CreateUser(ctx context.Context, input NewUser) (*User, error) {
	return store.create(ctx, input, Flags{IsActive: true})
}

// CreateSuperuser creates an account with every flag set.
func (store *CredentialStore) CreateSuperuser(ctx context.Context, input NewUser) (*User, error) {
	return store.create(ctx, input, Flags{IsActive: true, IsStaff: true, IsSuperuser: true})
}

/*
Provision creates an account with explicit flags on behalf of caller.

Parameters:
  - ctx: context.Context
  - input: NewUser
  - flags: Flags
  - caller: *sec.Principal

Returns:
  - *User: Created account
  - error: PERMISSION_DENIED when a non-superuser grants staff or superuser status
*/
func (store *CredentialStore) Provision(ctx context.Context, input NewUser, flags Flags, caller *sec.Principal) (*User, error) {
	if (flags.IsStaff || flags.IsSuperuser) && !caller.Can(sec.CapGrantPrivileges) {
		return nil, apperr.Forbidden(MsgGrantForbidden)
	}

	validator := &validate.Validator{}
	if input.Password != "" {
		validator.MinLen(FieldPassword, input.Password, constants.MinPasswordLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return store.create(ctx, input, flags)
}

func (store *CredentialStore) create(ctx context.Context, input NewUser, flags Flags) (*User, error) {
	user := &User{
		Username:    NormalizeUsername(input.Username),
		Email:       NormalizeEmail(input.Email),
		FullName:    strings.TrimSpace(input.FullName),
		IsActive:    flags.IsActive,
		IsStaff:     flags.IsStaff,
		IsSuperuser: flags.IsSuperuser,
	}

	validator := &validate.Validator{}
	validateAccount(validator, user)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := store.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("credential_store_hash_failed: %w", err)
	}
	user.PasswordHash = hash

	if err := store.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Credential Checks

/*
VerifyCredentials returns the account matching username and password.

Unknown usernames and wrong passwords both return (nil, nil). The unknown
branch still performs one hash comparison so response time does not reveal
which usernames exist. Inactive accounts are returned; callers decide.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - *User: Matching account, or nil
  - error: Storage failures only
*/
func (store *CredentialStore) VerifyCredentials(ctx context.Context, username, password string) (*User, error) {
	user, err := store.users.FindByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			store.hasher.Burn(password)
			return nil, nil
		}
		return nil, err
	}

	if !store.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// # Account Updates

/*
UpdateUser applies fields to account id on behalf of caller.

A supplied password is re-hashed. An omitted password keeps the stored hash
only when the caller may update without one; otherwise the update fails on
the password field. Changing is_staff or is_superuser requires
[sec.CapGrantPrivileges].

Parameters:
  - ctx: context.Context
  - id: int64
  - fields: UserUpdate
  - caller: *sec.Principal

Returns:
  - *User: Updated account
  - error: NOT_FOUND, VALIDATION_ERROR or PERMISSION_DENIED
*/
func (store *CredentialStore) UpdateUser(ctx context.Context, id int64, fields UserUpdate, caller *sec.Principal) (*User, error) {
	user, err := store.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := GuardAccount(user, caller); err != nil {
		return nil, err
	}
	if changesPrivileges(user, fields) && !caller.Can(sec.CapGrantPrivileges) {
		return nil, apperr.Forbidden(MsgGrantForbidden)
	}

	password := pointer.Val(fields.Password)

	validator := &validate.Validator{}
	if password != "" {
		validator.MinLen(FieldPassword, password, constants.MinPasswordLength)
	} else if sec.RequiresPasswordOnUpdate(caller) {
		validator.Custom(FieldPassword, true, "This field is required.")
	}

	if fields.Username != nil {
		user.Username = NormalizeUsername(*fields.Username)
	}
	if fields.Email != nil {
		user.Email = NormalizeEmail(*fields.Email)
	}
	user.FullName = strings.TrimSpace(pointer.Fallback(fields.FullName, user.FullName))
	user.IsActive = pointer.Fallback(fields.IsActive, user.IsActive)
	user.IsStaff = pointer.Fallback(fields.IsStaff, user.IsStaff)
	user.IsSuperuser = pointer.Fallback(fields.IsSuperuser, user.IsSuperuser)

	validateAccount(validator, user)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if password != "" {
		hash, err := store.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("credential_store_hash_failed: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := store.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GuardAccount refuses any change to a superuser account made by someone
// other than that superuser, unless the caller may grant privileges.
func GuardAccount(target *User, caller *sec.Principal) error {
	if !target.IsSuperuser || caller.Can(sec.CapGrantPrivileges) {
		return nil
	}
	if caller != nil && caller.UserID == target.ID {
		return nil
	}
	return apperr.Forbidden(MsgSuperuserProtected)
}

func changesPrivileges(user *User, fields UserUpdate) bool {
	return (fields.IsStaff != nil && *fields.IsStaff != user.IsStaff) ||
		(fields.IsSuperuser != nil && *fields.IsSuperuser != user.IsSuperuser)
}

// # Normalisation

// NormalizeUsername applies NFKC so visually identical usernames collide.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}

// NormalizeEmail lowercases the domain part. The local part is case-sensitive
// per RFC 5321 and is left untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func validateAccount(validator *validate.Validator, user *User) {
	validator.Required(FieldUsername, user.Username).
		MaxLen(FieldUsername, user.Username, MaxUsernameLength).
		Custom(FieldUsername, user.Username != "" && !validUsername(user.Username),
			"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")

	validator.Required(FieldEmail, user.Email).MaxLen(FieldEmail, user.Email, MaxEmailLength)
	if user.Email != "" {
		validator.Email(FieldEmail, user.Email)
	}

	validator.MaxLen(FieldFullName, user.FullName, MaxFullNameLength)
}

func validUsername(username string) bool {
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		return false
	}
	return true
}
