// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/users/auth"
)

// # In-memory Repositories

type memUsers struct {
	mu     sync.Mutex
	rows   map[int64]auth.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[int64]auth.User{}}
}

func (repo *memUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repo *memUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.rows {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memUsers) conflict(user *auth.User) error {
	for id, row := range repo.rows {
		if id == user.ID {
			continue
		}
		if row.Username == user.Username {
			return apperr.FieldInvalid(auth.FieldUsername, auth.MsgDuplicateUsername)
		}
		if strings.EqualFold(row.Email, user.Email) {
			return apperr.FieldInvalid(auth.FieldEmail, auth.MsgDuplicateEmail)
		}
	}
	return nil
}

func (repo *memUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if err := repo.conflict(user); err != nil {
		return err
	}
	repo.nextID++
	user.ID = repo.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	repo.rows[user.ID] = *user
	return nil
}

func (repo *memUsers) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.rows[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	if err := repo.conflict(user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now()
	repo.rows[user.ID] = *user
	return nil
}

func (repo *memUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user := repo.rows[id]
	user.LastLogin.Time = at
	user.LastLogin.Valid = true
	repo.rows[id] = user
	return nil
}

func (repo *memUsers) count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.rows)
}

type memTokens struct {
	mu     sync.Mutex
	byUser map[int64]string
}

func newMemTokens() *memTokens {
	return &memTokens{byUser: map[int64]string{}}
}

func (repo *memTokens) GetOrCreate(_ context.Context, userID int64, candidate string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if key, ok := repo.byUser[userID]; ok {
		return key, nil
	}
	repo.byUser[userID] = candidate
	return candidate, nil
}

func (repo *memTokens) DeleteByUser(_ context.Context, userID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.byUser, userID)
	return nil
}

func (repo *memTokens) FindUserID(_ context.Context, key string) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for userID, stored := range repo.byUser {
		if stored == key {
			return userID, nil
		}
	}
	return 0, apperr.NotFound("Token")
}

func (repo *memTokens) count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.byUser)
}

type memSessions struct {
	mu   sync.Mutex
	rows map[string]auth.Session
}

func newMemSessions() *memSessions {
	return &memSessions{rows: map[string]auth.Session{}}
}

func (repo *memSessions) Create(_ context.Context, id string, session *auth.Session, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.rows[id] = *session
	return nil
}

func (repo *memSessions) Find(_ context.Context, id string) (*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	session, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}

func (repo *memSessions) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.rows, id)
	return nil
}

func (repo *memSessions) count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.rows)
}

// # Hasher & Recorder

// countingHasher wraps a low-cost bcrypt hasher and counts timing burns.
type countingHasher struct {
	*sec.BcryptHasher

	mu    sync.Mutex
	burns int
}

func (hasher *countingHasher) Burn(plain string) {
	hasher.mu.Lock()
	hasher.burns++
	hasher.mu.Unlock()
	hasher.BcryptHasher.Burn(plain)
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (log *eventLog) RecordAuthEvent(event string) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.events = append(log.events, event)
}

// # Fixture

type fixture struct {
	users       *memUsers
	tokens      *memTokens
	sessions    *memSessions
	hasher      *countingHasher
	events      *eventLog
	csrf        *sec.CSRFSigner
	credentials *auth.CredentialStore
	service     *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:    newMemUsers(),
		tokens:   newMemTokens(),
		sessions: newMemSessions(),
		hasher:   &countingHasher{BcryptHasher: sec.NewBcryptHasher(4)},
		events:   &eventLog{},
		csrf:     sec.NewCSRFSigner("test-secret-that-is-long-enough-1234", time.Hour),
	}

	f.credentials = auth.NewCredentialStore(f.users, f.hasher)
	f.service = auth.NewService(
		f.users,
		f.credentials,
		auth.NewTokenIssuer(f.tokens),
		auth.NewSessionManager(f.sessions, time.Hour),
		f.csrf,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		auth.WithEventRecorder(f.events),
	)
	return f
}

// seed creates an account directly through the credential store.
func (f *fixture) seed(t *testing.T, username, password string, flags auth.Flags) *auth.User {
	t.Helper()

	user, err := f.credentials.CreateUser(context.Background(), auth.NewUser{
		Username: username,
		Email:    username + "@example.gov",
		Password: password,
	})
	require.NoError(t, err)

	user.IsActive = flags.IsActive
	user.IsStaff = flags.IsStaff
	user.IsSuperuser = flags.IsSuperuser
	require.NoError(t, f.users.Update(context.Background(), user))
	return user
}
