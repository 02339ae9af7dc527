// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/sec"
)

// SessionMeta describes the client that opened a session.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// SessionManager opens, resolves and destroys server-side sessions.
type SessionManager struct {
	sessions SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionManager(sessions SessionRepository, ttl time.Duration) *SessionManager {
	return &SessionManager{sessions: sessions, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of every session opened by the manager.
func (manager *SessionManager) TTL() time.Duration {
	return manager.ttl
}

// Open stores a new session for userID and returns its raw id.
func (manager *SessionManager) Open(ctx context.Context, userID int64, meta SessionMeta) (string, error) {
	id, err := sec.GenerateSecureToken(SessionIDBytes)
	if err != nil {
		return "", fmt.Errorf("session_manager_generate_failed: %w", err)
	}

	session := &Session{
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: manager.now().UTC(),
	}
	if err := manager.sessions.Create(ctx, id, session, manager.ttl); err != nil {
		return "", fmt.Errorf("session_manager_open_failed: %w", err)
	}
	return id, nil
}

// Resolve returns the live session for id, or (nil, nil) when it is unknown or expired.
func (manager *SessionManager) Resolve(ctx context.Context, id string) (*Session, error) {
	session, err := manager.sessions.Find(ctx, id)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session_manager_resolve_failed: %w", err)
	}
	return session, nil
}

// Destroy removes the session. Destroying an unknown session succeeds.
func (manager *SessionManager) Destroy(ctx context.Context, id string) error {
	if err := manager.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("session_manager_destroy_failed: %w", err)
	}
	return nil
}
