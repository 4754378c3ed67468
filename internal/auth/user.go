// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"net/mail"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Username validation constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
)

// usernameRegex matches usernames that:
// - Start with a letter (a-z, A-Z)
// - Contain only letters, numbers, and underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Gender is a self-reported profile field.
type Gender string

// Gender values.
const (
	GenderMale         Gender = "MALE"
	GenderFemale       Gender = "FEMALE"
	GenderOther        Gender = "OTHER"
	GenderNotSpecified Gender = "NOT_SPECIFIED"
)

// User represents an account. PasswordHash is nil for social-only accounts;
// the storage layer enforces that a user has a password hash or a social
// identity (or both).
type User struct {
	ID                ulid.ULID
	Username          string
	Email             string
	PasswordHash      *string
	Bio               *string
	FirstName         *string
	LastName          *string
	DateOfBirth       *time.Time
	Gender            *Gender
	ProfilePhotoKey   *string
	EmailVerified     bool
	VerificationToken *string // sha256 hash of the pending token, nil once consumed
	SocialProvider    *string
	SocialProviderID  *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewLocalUser creates an unverified password account.
func NewLocalUser(username, email, passwordHash string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           ulid.Make(),
		Username:     username,
		Email:        email,
		PasswordHash: &passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewSocialUser creates a pre-verified, password-less account bound to a
// social identity. Provider attestation stands in for email verification.
func NewSocialUser(username, email, provider, providerID string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if provider == "" || providerID == "" {
		return nil, oops.Code("AUTH_INVALID_IDENTITY").Errorf("provider and provider id are required")
	}

	now := time.Now()
	return &User{
		ID:               ulid.Make(),
		Username:         username,
		Email:            email,
		EmailVerified:    true,
		SocialProvider:   &provider,
		SocialProviderID: &providerID,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasSocialIdentity reports whether the account is linked to a provider.
func (u *User) HasSocialIdentity() bool {
	return u.SocialProvider != nil && u.SocialProviderID != nil
}

// ValidateUsername validates a username against rules.
// Username requirements:
// - Length: MinUsernameLength to MaxUsernameLength characters
// - Must start with a letter
// - Can contain only letters (a-z, A-Z), numbers (0-9), and underscores (_)
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("AUTH_INVALID_USERNAME").Errorf("username cannot be empty")
	}
	if len(username) < MinUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("min", MinUsernameLength).
			Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("max", MaxUsernameLength).
			Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return oops.Code("AUTH_INVALID_USERNAME").
			Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return oops.Code("AUTH_INVALID_EMAIL").With("email", email).Wrap(err)
	}
	return nil
}

// ValidatePassword validates a plaintext password before hashing.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return oops.Code("AUTH_INVALID_PASSWORD").
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ProfilePatch carries optional profile field updates. Nil fields are left
// unchanged.
type ProfilePatch struct {
	Bio             *string
	FirstName       *string
	LastName        *string
	DateOfBirth     *time.Time
	Gender          *Gender
	ProfilePhotoKey *string
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Username, email, and (provider, provider-id)
	// uniqueness violations are reported as ErrConflict.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByUsername retrieves a user by username (case-insensitive).
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetBySocialIdentity retrieves a user by (provider, provider-id).
	GetBySocialIdentity(ctx context.Context, provider, providerID string) (*User, error)

	// Update updates an existing user's mutable fields.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces only the password hash for a user.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error

	// SetVerificationToken replaces any pending verification token hash.
	SetVerificationToken(ctx context.Context, id ulid.ULID, tokenHash string) error

	// ConsumeVerificationToken marks the owning user verified and clears the
	// token in a single atomic update. Returns ErrNotFound if no user holds
	// the given token hash.
	ConsumeVerificationToken(ctx context.Context, tokenHash string) (*User, error)

	// LinkSocialIdentity attaches a provider identity to an existing user
	// and marks the email verified.
	LinkSocialIdentity(ctx context.Context, id ulid.ULID, provider, providerID string) error

	// Delete removes a user. Owned entities cascade at the storage layer.
	Delete(ctx context.Context, id ulid.ULID) error
}
