// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// dummyPasswordHash is used when a user doesn't exist or has no password so
// that verification still runs and response time stays consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// LoginService authenticates credentials and manages session lifecycle.
// It is the authentication boundary for every other request.
type LoginService struct {
	users      UserRepository
	sessions   SessionStore
	hasher     PasswordHasher
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewLoginService creates a LoginService with the default session TTL.
func NewLoginService(users UserRepository, sessions SessionStore, hasher PasswordHasher) (*LoginService, error) {
	return NewLoginServiceWithOptions(users, sessions, hasher, DefaultSessionTTL, slog.Default())
}

// NewLoginServiceWithOptions creates a LoginService with explicit TTL and logger.
func NewLoginServiceWithOptions(users UserRepository, sessions SessionStore, hasher PasswordHasher, sessionTTL time.Duration, logger *slog.Logger) (*LoginService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("sessions store is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		sessionTTL: sessionTTL,
		logger:     logger,
	}, nil
}

// SessionTTL returns the configured sliding session window.
func (s *LoginService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login authenticates a user by username and password and issues a session
// token. Unknown usernames, social-only accounts, and wrong passwords all
// fail with ErrInvalidCredentials after a full hash verification, so the
// three cases are indistinguishable to the caller. A correct password against
// an unverified local account fails with ErrEmailNotVerified.
func (s *LoginService) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, lookupErr := s.users.GetByUsername(ctx, username)

	// Pick the hash to verify against. Missing users and password-less
	// accounts verify against the dummy hash to keep timing uniform.
	targetHash := dummyPasswordHash
	credentialed := false

	switch {
	case lookupErr != nil && errors.Is(lookupErr, ErrNotFound):
		// fall through with dummy hash
	case lookupErr != nil:
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(lookupErr)
	case user.HasPassword():
		targetHash = *user.PasswordHash
		credentialed = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !credentialed {
			return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	if !credentialed || !valid {
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	// Gate after password verification so the distinct error cannot be used
	// to probe verification state without the password.
	if !user.EmailVerified {
		return nil, "", oops.Code("AUTH_EMAIL_NOT_VERIFIED").
			With("user_id", user.ID.String()).
			Wrap(ErrEmailNotVerified)
	}

	if s.hasher.NeedsUpgrade(*user.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			// Best effort - login succeeds even if the upgrade write fails.
			if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
				s.logger.Warn("password hash upgrade failed", "user_id", user.ID.String(), "error", err)
			} else {
				user.PasswordHash = &newHash
			}
		}
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, "", oops.Code("AUTH_SESSION_CREATE_FAILED").
			With("operation", "create session").
			Wrap(err)
	}

	return user, token, nil
}

// ValidateSession resolves a session token to a user id, sliding the TTL
// forward on a hit. A miss returns (zero, false, nil). A store outage
// returns an error wrapping ErrStoreUnavailable; callers fail closed.
func (s *LoginService) ValidateSession(ctx context.Context, token string) (ulid.ULID, bool, error) {
	if token == "" {
		return ulid.ULID{}, false, nil
	}
	userID, ok, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return ulid.ULID{}, false, oops.Code("SESSION_VALIDATE_FAILED").
			With("operation", "validate session").
			Wrap(err)
	}
	return userID, ok, nil
}

// Logout invalidates a session token. Idempotent: unknown and expired tokens
// are not errors.
func (s *LoginService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "invalidate session").
			Wrap(err)
	}
	return nil
}

// CurrentUser loads the full user record for an authenticated id.
func (s *LoginService) CurrentUser(ctx context.Context, id ulid.ULID) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("USER_NOT_FOUND").Wrap(err)
		}
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}
	return user, nil
}
