// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrCSRFMismatch is returned when a CSRF token is valid but bound to another session.
var ErrCSRFMismatch = errors.New("sec: csrf token does not belong to this session")

const csrfIssuer = "civicportal"

// csrfClaims binds a token to the digest of one session id.
type csrfClaims struct {
	jwt.RegisteredClaims
}

// CSRFSigner issues and verifies HS256 CSRF tokens bound to a session.
//
// # Binding
//
// The subject is [HashToken] of the session id, so the raw id never appears
// in a value that page scripts can read.
type CSRFSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCSRFSigner builds a signer. The ttl should match the session lifetime.
func NewCSRFSigner(secret string, ttl time.Duration) *CSRFSigner {
	return &CSRFSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for sessionID.
func (signer *CSRFSigner) Issue(sessionID string) (string, error) {
	issuedAt := signer.now()
	claims := csrfClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    csrfIssuer,
			Subject:   HashToken(sessionID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(signer.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign csrf token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and session binding.
func (signer *CSRFSigner) Verify(token, sessionID string) error {
	parsed, err := jwt.ParseWithClaims(token, &csrfClaims{}, func(*jwt.Token) (any, error) {
		return signer.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(csrfIssuer),
		jwt.WithTimeFunc(signer.now),
	)
	if err != nil {
		return fmt.Errorf("sec: invalid csrf token: %w", err)
	}

	claims, ok := parsed.Claims.(*csrfClaims)
	if !ok || !parsed.Valid {
		return fmt.Errorf("sec: invalid csrf token claims")
	}
	if claims.Subject != HashToken(sessionID) {
		return ErrCSRFMismatch
	}
	return nil
}
