// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/civicportal/internal/platform/sec"
)

// TokenIssuer manages the one API key each account may hold.
type TokenIssuer struct {
	tokens TokenRepository
}

func NewTokenIssuer(tokens TokenRepository) *TokenIssuer {
	return &TokenIssuer{tokens: tokens}
}

// Issue returns the account's key, creating one if it has none.
// Login and registration both go through here, so an account never holds two keys.
func (issuer *TokenIssuer) Issue(ctx context.Context, userID int64) (string, error) {
	candidate, err := sec.GenerateSecureToken(sec.APIKeyBytes)
	if err != nil {
		return "", fmt.Errorf("token_issuer_generate_failed: %w", err)
	}

	key, err := issuer.tokens.GetOrCreate(ctx, userID, candidate)
	if err != nil {
		return "", fmt.Errorf("token_issuer_issue_failed: %w", err)
	}
	return key, nil
}

// Revoke deletes the account's key, if any.
func (issuer *TokenIssuer) Revoke(ctx context.Context, userID int64) error {
	if err := issuer.tokens.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("token_issuer_revoke_failed: %w", err)
	}
	return nil
}

// Resolve returns the owner of key, or NOT_FOUND.
func (issuer *TokenIssuer) Resolve(ctx context.Context, key string) (int64, error) {
	return issuer.tokens.FindUserID(ctx, key)
}
