// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes = 32                  // 32 bytes = 64 hex chars
	DefaultSessionTTL = 30 * 24 * time.Hour // 30 day sliding window
)

// GenerateSessionToken creates a cryptographically random session token.
// The token is the session-store key; it is never persisted relationally.
func GenerateSessionToken() (string, error) {
	tokenBytes := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}
	return hex.EncodeToString(tokenBytes), nil
}

// SessionStore maps opaque session tokens to user ids with a sliding TTL.
//
// Validate distinguishes three outcomes: a hit (user id, true, nil), a miss
// or expired token (zero, false, nil), and an unreachable store (zero, false,
// error wrapping ErrStoreUnavailable). A miss is a normal, non-error outcome;
// store outage must never be treated as anonymous.
type SessionStore interface {
	// Create stores token -> userID with expiry now+ttl and returns the token.
	Create(ctx context.Context, userID ulid.ULID, ttl time.Duration) (string, error)

	// Validate looks up a token. On a hit the TTL is reset to the full
	// configured window (sliding expiration).
	Validate(ctx context.Context, token string) (ulid.ULID, bool, error)

	// Invalidate deletes a token. Idempotent: deleting an unknown or expired
	// token succeeds.
	Invalidate(ctx context.Context, token string) error

	// Close releases the underlying store client.
	Close() error
}
