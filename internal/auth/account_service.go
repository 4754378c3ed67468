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

// AccountService handles registration, password changes, and profile edits.
type AccountService struct {
	users  UserRepository
	hasher PasswordHasher
	mailer Mailer
	logger *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(users UserRepository, hasher PasswordHasher, mailer Mailer) (*AccountService, error) {
	return NewAccountServiceWithLogger(users, hasher, mailer, slog.Default())
}

// NewAccountServiceWithLogger creates an AccountService with an explicit logger.
func NewAccountServiceWithLogger(users UserRepository, hasher PasswordHasher, mailer Mailer, logger *slog.Logger) (*AccountService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if mailer == nil {
		return nil, oops.Errorf("mailer is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &AccountService{users: users, hasher: hasher, mailer: mailer, logger: logger}, nil
}

// Register creates an unverified local account, issues a verification token,
// and dispatches the verification email. The account exists regardless of
// email deliverability: dispatch failure is logged as a warning and does not
// roll the registration back.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewLocalUser(username, email, passwordHash)
	if err != nil {
		return nil, err
	}

	token, tokenHash, err := GenerateVerificationToken()
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "generate verification token").
			Wrap(err)
	}
	user.VerificationToken = &tokenHash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, oops.Code("CONFLICT").
				With("username", username).
				Wrap(err)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, token); err != nil {
		s.logger.Warn("verification email dispatch failed, account created anyway",
			"user_id", user.ID.String(),
			"error", err)
	}

	return user, nil
}

// ChangePassword replaces a user's password hash after verifying the current
// password. Social-only accounts have no current password and fail with
// ErrForbidden.
func (s *AccountService) ChangePassword(ctx context.Context, userID ulid.ULID, current, next string) error {
	if err := ValidatePassword(next); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("USER_NOT_FOUND").Wrap(err)
		}
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}

	if !user.HasPassword() {
		return oops.Code("FORBIDDEN").Wrap(ErrForbidden)
	}

	valid, err := s.hasher.Verify(current, *user.PasswordHash)
	if err != nil {
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "verify current password").
			Wrap(err)
	}
	if !valid {
		return oops.Code("FORBIDDEN").Wrap(ErrForbidden)
	}

	newHash, err := s.hasher.Hash(next)
	if err != nil {
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "update password").
			Wrap(err)
	}
	return nil
}

// UpdateProfile applies a partial profile edit and returns the updated user.
func (s *AccountService) UpdateProfile(ctx context.Context, userID ulid.ULID, patch ProfilePatch) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("USER_NOT_FOUND").Wrap(err)
		}
		return nil, oops.Code("PROFILE_UPDATE_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}

	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.FirstName != nil {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = patch.LastName
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = patch.DateOfBirth
	}
	if patch.Gender != nil {
		user.Gender = patch.Gender
	}
	if patch.ProfilePhotoKey != nil {
		user.ProfilePhotoKey = patch.ProfilePhotoKey
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, oops.Code("PROFILE_UPDATE_FAILED").
			With("operation", "update user").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return user, nil
}

// DeleteAccount removes a user. Owned goals, categories, counters, and time
// settings cascade at the storage layer. Live sessions are left to expire.
func (s *AccountService) DeleteAccount(ctx context.Context, userID ulid.ULID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("USER_NOT_FOUND").Wrap(err)
		}
		return oops.Code("ACCOUNT_DELETE_FAILED").
			With("operation", "delete user").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return nil
}
