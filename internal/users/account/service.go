// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
	"github.com/taibuivan/civicportal/internal/users/auth"
	"github.com/taibuivan/civicportal/pkg/pagination"
	"github.com/taibuivan/civicportal/pkg/pointer"
)

// TokenRevoker deletes an account's API key.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID int64) error
}

// # Service Layer

// Service orchestrates the user directory.
type Service struct {
	accounts    Repository
	credentials *auth.CredentialStore
	tokens      TokenRevoker
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accounts Repository, credentials *auth.CredentialStore, tokens TokenRevoker, logger *slog.Logger) *Service {
	return &Service{
		accounts:    accounts,
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

func (service *Service) List(ctx context.Context, params pagination.Params) ([]*auth.Profile, int, error) {
	users, total, err := service.accounts.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]*auth.Profile, len(users))
	for index, user := range users {
		profiles[index] = user.ToProfile()
	}
	return profiles, total, nil
}

func (service *Service) Get(ctx context.Context, id int64) (*auth.Profile, error) {
	user, err := service.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}

/*
Create provisions an account on behalf of caller.

Parameters:
  - ctx: context.Context
  - input: CreateInput
  - caller: *sec.Principal

Returns:
  - *auth.Profile: The created account
  - error: VALIDATION_ERROR or PERMISSION_DENIED
*/
func (service *Service) Create(ctx context.Context, input CreateInput, caller *sec.Principal) (*auth.Profile, error) {
	flags := auth.Flags{
		IsActive:    pointer.Fallback(input.IsActive, true),
		IsStaff:     input.IsStaff,
		IsSuperuser: input.IsSuperuser,
	}

	user, err := service.credentials.Provision(ctx, auth.NewUser{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Password: input.Password,
	}, flags, caller)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_provisioned",
		slog.Int64("user_id", user.ID),
		slog.Int64("by", caller.UserID),
	)
	return user.ToProfile(), nil
}

/*
Replace is the PUT variant of [Service.Update]: username and email must be
present in the body.
*/
func (service *Service) Replace(ctx context.Context, id int64, fields auth.UserUpdate, caller *sec.Principal) (*auth.Profile, error) {
	validator := &validate.Validator{}
	validator.Custom(auth.FieldUsername, fields.Username == nil, "This field is required.")
	validator.Custom(auth.FieldEmail, fields.Email == nil, "This field is required.")
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.Update(ctx, id, fields, caller)
}

// Update applies a partial change. Turning is_active off also revokes the key.
func (service *Service) Update(ctx context.Context, id int64, fields auth.UserUpdate, caller *sec.Principal) (*auth.Profile, error) {
	user, err := service.credentials.UpdateUser(ctx, id, fields, caller)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := service.tokens.Revoke(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("account_service_update_failed: %w", err)
		}
	}

	service.logger.InfoContext(ctx, "user_updated",
		slog.Int64("user_id", user.ID),
		slog.Int64("by", caller.UserID),
	)
	return user.ToProfile(), nil
}

/*
Deactivate disables account id and revokes its API key.

Sessions already open expire on their own; session authentication rejects
inactive accounts in the meantime.
*/
func (service *Service) Deactivate(ctx context.Context, id int64, caller *sec.Principal) error {
	target, err := service.accounts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.GuardAccount(target, caller); err != nil {
		return err
	}

	if err := service.accounts.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := service.tokens.Revoke(ctx, id); err != nil {
		return fmt.Errorf("account_service_deactivate_failed: %w", err)
	}

	service.logger.WarnContext(ctx, "user_deactivated",
		slog.Int64("user_id", id),
		slog.Int64("by", caller.UserID),
	)
	return nil
}
