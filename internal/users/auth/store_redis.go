// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/sec"
)

// # Session Store

// RedisSessionRepository implements [SessionRepository] on Redis.
//
// Sessions live under auth:session:<sha256(id)> and expire with the key, so
// a dump of the keyspace never yields a usable cookie value.
type RedisSessionRepository struct {
	client redis.UniversalClient
}

// NewSessionRepository creates a new Redis-backed session store.
func NewSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return constants.RedisPrefixSession + sec.HashToken(id)
}

/*
Create stores the session as JSON with a TTL.

Parameters:
  - ctx: context.Context
  - id: string
  - session: *Session
  - ttl: time.Duration

Returns:
  - error: Serialisation or Redis failures
*/
func (repository *RedisSessionRepository) Create(ctx context.Context, id string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(ctx, sessionKey(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Find(ctx context.Context, id string) (*Session, error) {
	payload, err := repository.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return session, nil
}

func (repository *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := repository.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
