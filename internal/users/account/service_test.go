// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/users/account"
	"github.com/taibuivan/civicportal/internal/users/auth"
	"github.com/taibuivan/civicportal/pkg/pagination"
	"github.com/taibuivan/civicportal/pkg/pointer"
)

// # Fakes

// directory satisfies both account.Repository and auth.UserRepository.
type directory struct {
	mu     sync.Mutex
	rows   map[int64]auth.User
	nextID int64
}

func newDirectory() *directory {
	return &directory{rows: map[int64]auth.User{}}
}

func (repo *directory) List(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	ids := make([]int64, 0, len(repo.rows))
	for id := range repo.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	users := []*auth.User{}
	for index := offset; index < len(ids) && len(users) < limit; index++ {
		user := repo.rows[ids[index]]
		users = append(users, &user)
	}
	return users, len(ids), nil
}

func (repo *directory) FindByID(_ context.Context, id int64) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repo *directory) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.rows {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *directory) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, row := range repo.rows {
		if row.Username == user.Username {
			return apperr.FieldInvalid(auth.FieldUsername, auth.MsgDuplicateUsername)
		}
	}
	repo.nextID++
	user.ID = repo.nextID
	repo.rows[user.ID] = *user
	return nil
}

func (repo *directory) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.rows[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	repo.rows[user.ID] = *user
	return nil
}

func (repo *directory) TouchLastLogin(context.Context, int64, time.Time) error { return nil }

func (repo *directory) Deactivate(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.rows[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.IsActive = false
	repo.rows[id] = user
	return nil
}

type revoker struct {
	mu      sync.Mutex
	revoked []int64
}

func (r *revoker) Revoke(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked = append(r.revoked, userID)
	return nil
}

// # Fixture

var (
	superuser = &sec.Principal{UserID: 1, Username: "root", IsActive: true, IsStaff: true, IsSuperuser: true}
	clerk     = &sec.Principal{UserID: 2, Username: "clerk", IsActive: true}
)

type fixture struct {
	users   *directory
	tokens  *revoker
	service *account.Service
}

func newFixture() *fixture {
	users := newDirectory()
	tokens := &revoker{}
	credentials := auth.NewCredentialStore(users, sec.NewBcryptHasher(4))

	return &fixture{
		users:   users,
		tokens:  tokens,
		service: account.NewService(users, credentials, tokens, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func (f *fixture) provision(t *testing.T, username string) *auth.Profile {
	t.Helper()
	profile, err := f.service.Create(context.Background(), account.CreateInput{
		Username: username,
		Email:    username + "@example.gov",
		Password: "password1",
	}, superuser)
	require.NoError(t, err)
	return profile
}

// # Tests

func TestService_Create(t *testing.T) {
	tests := []struct {
		name   string
		input  account.CreateInput
		caller *sec.Principal
		code   string
	}{
		{
			name:   "clerk_creates_plain_account",
			input:  account.CreateInput{Username: "bob", Email: "bob@x.com", Password: "password1"},
			caller: clerk,
		},
		{
			name:   "clerk_cannot_grant_staff",
			input:  account.CreateInput{Username: "bob", Email: "bob@x.com", Password: "password1", IsStaff: true},
			caller: clerk,
			code:   apperr.CodePermissionDenied,
		},
		{
			name:   "superuser_grants_staff",
			input:  account.CreateInput{Username: "bob", Email: "bob@x.com", Password: "password1", IsStaff: true},
			caller: superuser,
		},
		{
			name:   "password_required",
			input:  account.CreateInput{Username: "bob", Email: "bob@x.com"},
			caller: superuser,
			code:   apperr.CodeValidation,
		},
		{
			name:   "password_too_short",
			input:  account.CreateInput{Username: "bob", Email: "bob@x.com", Password: "short"},
			caller: superuser,
			code:   apperr.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			profile, err := f.service.Create(context.Background(), tt.input, tt.caller)
			if tt.code != "" {
				assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "bob", profile.Username)
			assert.True(t, profile.IsActive)
			assert.Equal(t, tt.input.IsStaff, profile.IsStaff)
		})
	}
}

func TestService_CreateInactive(t *testing.T) {
	f := newFixture()

	profile, err := f.service.Create(context.Background(), account.CreateInput{
		Username: "dormant",
		Email:    "dormant@x.com",
		Password: "password1",
		IsActive: pointer.To(false),
	}, clerk)

	require.NoError(t, err)
	assert.False(t, profile.IsActive)
}

func TestService_List(t *testing.T) {
	f := newFixture()
	for _, name := range []string{"ann", "ben", "cat"} {
		f.provision(t, name)
	}

	profiles, total, err := f.service.List(context.Background(), pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	require.Len(t, profiles, 2)
	assert.Equal(t, "cat", profiles[0].Username)
	assert.Equal(t, "ben", profiles[1].Username)
}

func TestService_Replace_RequiresIdentityFields(t *testing.T) {
	f := newFixture()
	profile := f.provision(t, "ann")

	_, err := f.service.Replace(context.Background(), profile.ID, auth.UserUpdate{
		FullName: pointer.To("Ann"),
	}, superuser)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Len(t, ae.Details, 2)
}

func TestService_Update(t *testing.T) {
	f := newFixture()
	profile := f.provision(t, "ann")

	updated, err := f.service.Update(context.Background(), profile.ID, auth.UserUpdate{
		FullName: pointer.To("Ann Archer"),
	}, superuser)
	require.NoError(t, err)
	assert.Equal(t, "Ann Archer", updated.FullName)
	assert.Empty(t, f.tokens.revoked)

	// A non-superuser must resend a password.
	_, err = f.service.Update(context.Background(), profile.ID, auth.UserUpdate{
		FullName: pointer.To("Ann B"),
	}, clerk)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	// Clearing is_active revokes the key straight away.
	_, err = f.service.Update(context.Background(), profile.ID, auth.UserUpdate{
		IsActive: pointer.To(false),
	}, superuser)
	require.NoError(t, err)
	assert.Equal(t, []int64{profile.ID}, f.tokens.revoked)
}

func TestService_Deactivate(t *testing.T) {
	f := newFixture()
	profile := f.provision(t, "ann")

	require.NoError(t, f.service.Deactivate(context.Background(), profile.ID, superuser))

	stored, err := f.service.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, []int64{profile.ID}, f.tokens.revoked)

	err = f.service.Deactivate(context.Background(), 999, superuser)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_SuperuserAccountIsProtected checks a plain member can neither
reset the password of, rename, nor deactivate a superuser account.
*/
func TestService_SuperuserAccountIsProtected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	root, err := f.service.Create(ctx, account.CreateInput{
		Username:    "root",
		Email:       "root@example.gov",
		Password:    "password1",
		IsStaff:     true,
		IsSuperuser: true,
	}, superuser)
	require.NoError(t, err)
	require.NotEqual(t, clerk.UserID, root.ID)

	tests := []struct {
		name   string
		fields auth.UserUpdate
	}{
		{"reset_password", auth.UserUpdate{Password: pointer.To("owned-by-clerk")}},
		{"rename", auth.UserUpdate{Username: pointer.To("someone"), Password: pointer.To("password2")}},
		{"disable", auth.UserUpdate{IsActive: pointer.To(false), Password: pointer.To("password2")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Update(ctx, root.ID, tt.fields, clerk)
			assert.True(t, apperr.HasCode(err, apperr.CodePermissionDenied))
		})
	}

	err = f.service.Deactivate(ctx, root.ID, clerk)
	assert.True(t, apperr.HasCode(err, apperr.CodePermissionDenied))
	assert.Empty(t, f.tokens.revoked)

	stored, err := f.users.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "root", stored.Username)

	// Another superuser may still manage the account.
	_, err = f.service.Update(ctx, root.ID, auth.UserUpdate{FullName: pointer.To("Root")}, superuser)
	assert.NoError(t, err)
}
