// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// SocialService resolves provider identities to local accounts and issues
// sessions for them.
type SocialService struct {
	users      UserRepository
	sessions   SessionStore
	providers  map[string]IdentityProvider
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewSocialService creates a SocialService with the default session TTL.
func NewSocialService(users UserRepository, sessions SessionStore, providers ...IdentityProvider) (*SocialService, error) {
	return NewSocialServiceWithOptions(users, sessions, DefaultSessionTTL, slog.Default(), providers...)
}

// NewSocialServiceWithOptions creates a SocialService with explicit TTL and logger.
func NewSocialServiceWithOptions(users UserRepository, sessions SessionStore, sessionTTL time.Duration, logger *slog.Logger, providers ...IdentityProvider) (*SocialService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("sessions store is required")
	}
	if len(providers) == 0 {
		return nil, oops.Errorf("at least one identity provider is required")
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	byName := make(map[string]IdentityProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &SocialService{
		users:      users,
		sessions:   sessions,
		providers:  byName,
		sessionTTL: sessionTTL,
		logger:     logger,
	}, nil
}

// Login exchanges a provider access token for a local account and session.
// Unknown provider names fail with ErrNotFound.
func (s *SocialService) Login(ctx context.Context, providerName, accessToken string) (*User, string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, "", oops.Code("PROVIDER_UNKNOWN").
			With("provider", providerName).
			Wrap(ErrNotFound)
	}

	profile, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, "", err
	}
	if err := profile.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.ResolveOrCreate(ctx, provider.Name(), profile)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, "", oops.Code("AUTH_SESSION_CREATE_FAILED").
			With("operation", "create session").
			Wrap(err)
	}

	return user, token, nil
}

// ResolveOrCreate maps a provider profile to a local account:
//
//  1. An account already linked to (provider, provider-id) wins.
//  2. Otherwise an account with the same email gets the identity linked onto
//     it and its email marked verified - local and social identities merge.
//  3. Otherwise a new pre-verified, password-less account is created with a
//     generated username.
//
// Repeat logins with the same provider id always yield the same user id.
func (s *SocialService) ResolveOrCreate(ctx context.Context, providerName string, profile Profile) (*User, error) {
	user, err := s.users.GetBySocialIdentity(ctx, providerName, profile.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("SOCIAL_RESOLVE_FAILED").
			With("operation", "get by social identity").
			Wrap(err)
	}

	user, err = s.users.GetByEmail(ctx, profile.Email)
	if err == nil {
		if linkErr := s.users.LinkSocialIdentity(ctx, user.ID, providerName, profile.ProviderUserID); linkErr != nil {
			if errors.Is(linkErr, ErrConflict) {
				// Concurrent login linked the identity first; re-read.
				return s.users.GetBySocialIdentity(ctx, providerName, profile.ProviderUserID)
			}
			return nil, oops.Code("SOCIAL_LINK_FAILED").
				With("operation", "link social identity").
				With("user_id", user.ID.String()).
				Wrap(linkErr)
		}
		s.logger.Info("linked social identity to existing account",
			"user_id", user.ID.String(),
			"provider", providerName)
		return s.users.GetByID(ctx, user.ID)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("SOCIAL_RESOLVE_FAILED").
			With("operation", "get by email").
			Wrap(err)
	}

	return s.createAccount(ctx, providerName, profile)
}

// createAccount creates a fresh social account, retrying username generation
// on uniqueness conflicts up to the retry budget.
func (s *SocialService) createAccount(ctx context.Context, providerName string, profile Profile) (*User, error) {
	for attempt := 0; attempt < usernameSuffixRetries; attempt++ {
		username, err := GenerateUsername(profile.DisplayName)
		if err != nil {
			return nil, err
		}

		user, err := NewSocialUser(username, profile.Email, providerName, profile.ProviderUserID)
		if err != nil {
			return nil, err
		}

		createErr := s.users.Create(ctx, user)
		if createErr == nil {
			return user, nil
		}
		if !errors.Is(createErr, ErrConflict) {
			return nil, oops.Code("SOCIAL_CREATE_FAILED").
				With("operation", "insert user").
				Wrap(createErr)
		}

		// A conflict can also mean a concurrent login created the same
		// identity or email; prefer resolving to it over retrying blindly.
		if existing, lookupErr := s.users.GetBySocialIdentity(ctx, providerName, profile.ProviderUserID); lookupErr == nil {
			return existing, nil
		}
	}

	return nil, oops.Code("AUTH_USERNAME_EXHAUSTED").
		With("retries", usernameSuffixRetries).
		Wrap(ErrUsernameExhausted)
}
