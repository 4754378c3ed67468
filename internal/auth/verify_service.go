// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// VerificationService manages the single-use email verification token
// lifecycle.
type VerificationService struct {
	users  UserRepository
	mailer Mailer
	logger *slog.Logger
}

// NewVerificationService creates a VerificationService.
func NewVerificationService(users UserRepository, mailer Mailer) (*VerificationService, error) {
	return NewVerificationServiceWithLogger(users, mailer, slog.Default())
}

// NewVerificationServiceWithLogger creates a VerificationService with an explicit logger.
func NewVerificationServiceWithLogger(users UserRepository, mailer Mailer, logger *slog.Logger) (*VerificationService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if mailer == nil {
		return nil, oops.Errorf("mailer is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &VerificationService{users: users, mailer: mailer, logger: logger}, nil
}

// IssueToken generates a fresh verification token for the user, replacing
// any previously issued pending token so a stale link cannot be replayed
// after a resend. Returns the plaintext token for the email link.
func (s *VerificationService) IssueToken(ctx context.Context, user *User) (string, error) {
	token, tokenHash, err := GenerateVerificationToken()
	if err != nil {
		return "", oops.Code("VERIFY_ISSUE_FAILED").
			With("operation", "generate token").
			Wrap(err)
	}

	if err := s.users.SetVerificationToken(ctx, user.ID, tokenHash); err != nil {
		return "", oops.Code("VERIFY_ISSUE_FAILED").
			With("operation", "store token hash").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	return token, nil
}

// Verify consumes a verification token: the owning user is marked verified
// and the token cleared in one atomic update. Consumed, expired, and
// never-issued tokens all fail with ErrInvalidToken without distinguishing
// the cause.
func (s *VerificationService) Verify(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, oops.Code("VERIFY_TOKEN_INVALID").Wrap(ErrInvalidToken)
	}

	user, err := s.users.ConsumeVerificationToken(ctx, HashVerificationToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("VERIFY_TOKEN_INVALID").Wrap(ErrInvalidToken)
		}
		return nil, oops.Code("VERIFY_FAILED").
			With("operation", "consume verification token").
			Wrap(err)
	}
	return user, nil
}

// Resend re-issues a verification token for an account identified by
// username or email and dispatches the verification email. Unknown
// identifiers fail with ErrNotFound; verified accounts with ErrAlreadyVerified.
// Dispatch failure is logged, not returned: the token is already re-issued
// and the next resend will replace it.
func (s *VerificationService) Resend(ctx context.Context, identifier string) error {
	user, err := s.users.GetByUsername(ctx, identifier)
	if err != nil && errors.Is(err, ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("USER_NOT_FOUND").Wrap(err)
		}
		return oops.Code("VERIFY_RESEND_FAILED").
			With("operation", "look up account").
			Wrap(err)
	}

	if user.EmailVerified {
		return oops.Code("VERIFY_ALREADY_VERIFIED").Wrap(ErrAlreadyVerified)
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return err
	}

	if err := s.mailer.SendVerification(ctx, user.Email, token); err != nil {
		s.logger.Warn("verification email dispatch failed on resend",
			"user_id", user.ID.String(),
			"error", err)
	}
	return nil
}
