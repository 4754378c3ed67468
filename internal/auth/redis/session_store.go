// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package redis implements the session store on Redis.
//
// Sessions are plain string keys ("session:<token>") holding the owning
// user id, expired by Redis itself via key TTLs. Nothing about a session
// is persisted elsewhere, so restarting Redis logs everyone out by design
// of the deployment, not of this package.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

// sessionKeyPrefix namespaces session keys so the store can share a Redis
// database with other consumers.
const sessionKeyPrefix = "session:"

// connectAttempts bounds the startup ping retry loop.
const connectAttempts = 5

// SessionStore implements auth.SessionStore on a Redis client.
type SessionStore struct {
	client *redis.Client

	// slideTTL is the window a session is extended to on every successful
	// validation.
	slideTTL time.Duration
}

// NewSessionStore connects to Redis at url (redis://...) and verifies the
// connection with a bounded exponential-backoff ping.
func NewSessionStore(ctx context.Context, url string) (*SessionStore, error) {
	return NewSessionStoreWithTTL(ctx, url, auth.DefaultSessionTTL)
}

// NewSessionStoreWithTTL connects like NewSessionStore with an explicit
// sliding-expiration window.
func NewSessionStoreWithTTL(ctx context.Context, url string, slideTTL time.Duration) (*SessionStore, error) {
	if slideTTL <= 0 {
		slideTTL = auth.DefaultSessionTTL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, oops.Code("SESSION_STORE_CONFIG_INVALID").
			With("operation", "parse redis url").
			Wrap(err)
	}

	client := redis.NewClient(opts)

	backoff := retry.WithMaxRetries(connectAttempts, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, oops.Code("SESSION_STORE_UNAVAILABLE").
			With("operation", "ping redis").
			Wrap(errors.Join(auth.ErrStoreUnavailable, err))
	}

	return &SessionStore{client: client, slideTTL: slideTTL}, nil
}

// NewSessionStoreWithClient wraps an existing client. The caller keeps
// ownership of the client lifecycle. Used by tests.
func NewSessionStoreWithClient(client *redis.Client, slideTTL time.Duration) *SessionStore {
	if slideTTL <= 0 {
		slideTTL = auth.DefaultSessionTTL
	}
	return &SessionStore{client: client, slideTTL: slideTTL}
}

// Create generates a fresh token and stores the session with the given TTL.
func (s *SessionStore) Create(ctx context.Context, userID ulid.ULID, ttl time.Duration) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", oops.Code("SESSION_CREATE_FAILED").
			With("operation", "generate token").
			Wrap(err)
	}

	if err := s.client.Set(ctx, sessionKey(token), userID.String(), ttl).Err(); err != nil {
		return "", oops.Code("SESSION_STORE_UNAVAILABLE").
			With("operation", "set session").
			Wrap(errors.Join(auth.ErrStoreUnavailable, err))
	}
	return token, nil
}

// Validate resolves a token to its user id, sliding the TTL forward on hit.
// Misses (unknown or expired tokens) return ok=false with a nil error;
// store failures return an error wrapping auth.ErrStoreUnavailable so
// callers can fail closed rather than treat an outage as a logout.
func (s *SessionStore) Validate(ctx context.Context, token string) (ulid.ULID, bool, error) {
	if token == "" {
		return ulid.ULID{}, false, nil
	}

	val, err := s.client.GetEx(ctx, sessionKey(token), s.slideTTL).Result()
	if errors.Is(err, redis.Nil) {
		return ulid.ULID{}, false, nil
	}
	if err != nil {
		return ulid.ULID{}, false, oops.Code("SESSION_STORE_UNAVAILABLE").
			With("operation", "get session").
			Wrap(errors.Join(auth.ErrStoreUnavailable, err))
	}

	userID, err := ulid.Parse(val)
	if err != nil {
		// A corrupt value is unusable; treat it as a miss and drop the key.
		_ = s.client.Del(ctx, sessionKey(token)).Err()
		return ulid.ULID{}, false, nil
	}
	return userID, true, nil
}

// Invalidate removes a session. Removing an absent session is a no-op.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return oops.Code("SESSION_STORE_UNAVAILABLE").
			With("operation", "delete session").
			Wrap(errors.Join(auth.ErrStoreUnavailable, err))
	}
	return nil
}

// Close releases the underlying client.
func (s *SessionStore) Close() error {
	if err := s.client.Close(); err != nil {
		return oops.Code("SESSION_STORE_CLOSE_FAILED").Wrap(err)
	}
	return nil
}

func sessionKey(token string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, token)
}

// Compile-time interface check.
var _ auth.SessionStore = (*SessionStore)(nil)
