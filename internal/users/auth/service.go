// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the portal's identity lifecycle.

It covers account credentials, API tokens and server-side sessions, and the
login, registration, logout, profile and check-auth flows built on them.

Architecture:

  - CredentialStore: account creation, password checks and account updates.
  - TokenIssuer: one opaque API key per account (Postgres).
  - SessionManager: cookie sessions with a TTL (Redis).
  - Service: orchestrates the flows and resolves request credentials.

Authentication state is per request. A request is anonymous until the
middleware resolves its API key or session cookie into a [sec.Principal].
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

// # Contracts & Types

// CSRFIssuer signs anti-forgery tokens bound to a session.
type CSRFIssuer interface {
	Issue(sessionID string) (string, error)
}

// EventRecorder counts authentication outcomes.
type EventRecorder interface {
	RecordAuthEvent(event string)
}

type noopRecorder struct{}

func (noopRecorder) RecordAuthEvent(string) {}

// Service implements the authentication use cases.
type Service struct {
	users       UserRepository
	credentials *CredentialStore
	tokens      *TokenIssuer
	sessions    *SessionManager
	csrf        CSRFIssuer
	events      EventRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a [Service].
type Option func(*Service)

// WithEventRecorder reports outcomes to recorder, usually the metrics registry.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(service *Service) {
		service.events = recorder
	}
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	users UserRepository,
	credentials *CredentialStore,
	tokens *TokenIssuer,
	sessions *SessionManager,
	csrf CSRFIssuer,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	service := &Service{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		sessions:    sessions,
		csrf:        csrf,
		events:      noopRecorder{},
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string

	// CurrentSessionID is the session the client already holds, if any.
	// It is destroyed so a login never leaves two live sessions behind.
	CurrentSessionID string

	Meta SessionMeta
}

// LoginResult is a successfully established login.
type LoginResult struct {
	Token     string
	SessionID string
	CSRFToken string
	User      *Profile
}

/*
Login validates credentials, then opens a session and issues the account's token.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token, session id, CSRF token and profile
  - error: VALIDATION_ERROR, AUTHENTICATION_FAILED, ACCOUNT_DISABLED or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, apperr.ValidationError(MsgMissingCredentials,
			apperr.FieldError{Field: FieldNonField, Message: MsgMissingCredentials})
	}

	user, err := service.credentials.VerifyCredentials(ctx, input.Username, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_verify_failed: %w", err)
	}

	// Same error for unknown usernames and wrong passwords.
	if user == nil {
		service.events.RecordAuthEvent(EventLoginFailed)
		service.logger.WarnContext(ctx, "login_failed", slog.String("username", input.Username))
		return nil, apperr.AuthenticationFailed(MsgInvalidCredentials)
	}

	if !user.IsActive {
		service.events.RecordAuthEvent(EventLoginDisabled)
		service.logger.WarnContext(ctx, "login_rejected_inactive", slog.Int64("user_id", user.ID))
		return nil, apperr.AccountDisabled()
	}

	token, err := service.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := service.users.TouchLastLogin(ctx, user.ID, service.now().UTC()); err != nil {
		return nil, fmt.Errorf("auth_service_touch_last_login_failed: %w", err)
	}

	if input.CurrentSessionID != "" {
		if err := service.sessions.Destroy(ctx, input.CurrentSessionID); err != nil {
			return nil, err
		}
	}

	// The session is opened last so a failed login never leaves one behind.
	sessionID, err := service.sessions.Open(ctx, user.ID, input.Meta)
	if err != nil {
		return nil, err
	}

	csrfToken, err := service.csrf.Issue(sessionID)
	if err != nil {
		if destroyErr := service.sessions.Destroy(ctx, sessionID); destroyErr != nil {
			service.logger.ErrorContext(ctx, "login_session_cleanup_failed", slog.Any("error", destroyErr))
		}
		return nil, fmt.Errorf("auth_service_csrf_failed: %w", err)
	}

	service.events.RecordAuthEvent(EventLoginSucceeded)
	service.logger.InfoContext(ctx, "user_logged_in", slog.Int64("user_id", user.ID))

	return &LoginResult{
		Token:     token,
		SessionID: sessionID,
		CSRFToken: csrfToken,
		User:      user.ToProfile(),
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enrol a new account.
type RegisterInput struct {
	Username        string
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
}

// RegisterResult is a freshly created account and its token.
type RegisterResult struct {
	Token string
	User  *Profile
}

/*
Register validates the passwords, creates the account and issues its token.

Every password rule is checked before anything is written, so a rejected
registration leaves no account behind. No session is opened.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *RegisterResult: Token and profile
  - error: VALIDATION_ERROR (including duplicate username or email) or internal failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	validator := &validate.Validator{}
	passwordRule(validator, FieldPassword, input.Password)
	passwordRule(validator, FieldConfirmPassword, input.ConfirmPassword)
	validator.Custom(FieldNonField, input.Password != input.ConfirmPassword, MsgPasswordMismatch)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.credentials.CreateUser(ctx, NewUser{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}

	token, err := service.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	service.events.RecordAuthEvent(EventRegistered)
	service.logger.InfoContext(ctx, "user_registered", slog.Int64("user_id", user.ID))

	return &RegisterResult{Token: token, User: user.ToProfile()}, nil
}

func passwordRule(validator *validate.Validator, field, value string) {
	if value == "" {
		validator.Required(field, value)
		return
	}
	validator.MinLen(field, value, constants.MinPasswordLength)
}

// # Session Termination

/*
Logout deletes the caller's token and destroys sessionID.

sessionID is the session cookie sent with the request, which may be present
even when the caller authenticated with a token.

Parameters:
  - ctx: context.Context
  - principal: *sec.Principal (nil when anonymous)
  - sessionID: string

Returns:
  - error: NOT_AUTHENTICATED (HTTP 400) for anonymous callers
*/
func (service *Service) Logout(ctx context.Context, principal *sec.Principal, sessionID string) error {
	if principal == nil {
		return apperr.NotLoggedIn()
	}

	if err := service.tokens.Revoke(ctx, principal.UserID); err != nil {
		return err
	}

	if sessionID != "" {
		if err := service.sessions.Destroy(ctx, sessionID); err != nil {
			return err
		}
	}

	service.events.RecordAuthEvent(EventLoggedOut)
	service.logger.InfoContext(ctx, "user_logged_out", slog.Int64("user_id", principal.UserID))
	return nil
}

// # Identity Queries

// Profile returns the caller's public profile.
func (service *Service) Profile(ctx context.Context, principal *sec.Principal) (*Profile, error) {
	if principal == nil {
		return nil, apperr.NotAuthenticated(MsgNotAuthenticated)
	}

	user, err := service.users.FindByID(ctx, principal.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotAuthenticated(MsgNotAuthenticated)
		}
		return nil, err
	}
	return user.ToProfile(), nil
}

// AuthStatus is the answer of [Service.CheckAuth].
type AuthStatus struct {
	IsAuthenticated bool     `json:"is_authenticated"`
	User            *Profile `json:"user,omitempty"`
}

// CheckAuth reports whether the caller is authenticated. It never fails:
// a lookup error is logged and reported as anonymous.
func (service *Service) CheckAuth(ctx context.Context, principal *sec.Principal) AuthStatus {
	if principal == nil {
		return AuthStatus{}
	}

	profile, err := service.Profile(ctx, principal)
	if err != nil {
		service.logger.WarnContext(ctx, "check_auth_lookup_failed",
			slog.Int64("user_id", principal.UserID),
			slog.Any("error", err),
		)
		return AuthStatus{}
	}
	return AuthStatus{IsAuthenticated: true, User: profile}
}

// # Credential Resolution

/*
AuthenticateToken resolves an API key into a principal.

Returns:
  - *sec.Principal: Token-authenticated caller
  - error: NOT_AUTHENTICATED for unknown keys and inactive owners
*/
func (service *Service) AuthenticateToken(ctx context.Context, key string) (*sec.Principal, error) {
	userID, err := service.tokens.Resolve(ctx, key)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.events.RecordAuthEvent(EventTokenRejected)
			return nil, apperr.NotAuthenticated(MsgInvalidToken)
		}
		return nil, err
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotAuthenticated(MsgInvalidToken)
		}
		return nil, err
	}

	if !user.IsActive {
		service.events.RecordAuthEvent(EventTokenRejected)
		return nil, apperr.NotAuthenticated(MsgInactiveToken)
	}
	return user.Principal(sec.MethodToken, ""), nil
}

// AuthenticateSession resolves a session id into a principal. Unknown or
// expired sessions and inactive owners yield (nil, nil): the request stays anonymous.
func (service *Service) AuthenticateSession(ctx context.Context, sessionID string) (*sec.Principal, error) {
	session, err := service.sessions.Resolve(ctx, sessionID)
	if err != nil || session == nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, nil
	}
	return user.Principal(sec.MethodSession, sessionID), nil
}

// SessionTTL is the lifetime of sessions opened by [Service.Login].
func (service *Service) SessionTTL() time.Duration {
	return service.sessions.TTL()
}
