// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package postgres implements the auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

// DB abstracts query execution so repositories work against *pgxpool.Pool
// in production and pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `id, username, email, password_hash, bio, first_name, last_name,
	       date_of_birth, gender, profile_photo_key, email_verified,
	       verification_token, social_provider, social_provider_id,
	       is_active, created_at, updated_at`

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. Unique violations on username, email, or the
// (provider, provider-id) pair are translated to auth.ErrConflict rather
// than leaked as raw storage errors.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, username, email, password_hash, bio, first_name, last_name,
			date_of_birth, gender, profile_photo_key, email_verified,
			verification_token, social_provider, social_provider_id,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		user.ID.String(),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.FirstName,
		user.LastName,
		user.DateOfBirth,
		genderToStringPtr(user.Gender),
		user.ProfilePhotoKey,
		user.EmailVerified,
		user.VerificationToken,
		user.SocialProvider,
		user.SocialProviderID,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("CONFLICT").
				With("username", user.Username).
				Wrap(auth.ErrConflict)
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username (case-insensitive).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_USERNAME_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// GetBySocialIdentity retrieves a user by (provider, provider-id).
func (r *UserRepository) GetBySocialIdentity(ctx context.Context, provider, providerID string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE social_provider = $1 AND social_provider_id = $2
	`, provider, providerID)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("provider", provider).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_IDENTITY_FAILED").
			With("operation", "get user by social identity").
			With("provider", provider).
			Wrap(err)
	}
	return user, nil
}

// Update updates an existing user's mutable fields.
func (r *UserRepository) Update(ctx context.Context, user *auth.User) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET
			username = $2,
			email = $3,
			bio = $4,
			first_name = $5,
			last_name = $6,
			date_of_birth = $7,
			gender = $8,
			profile_photo_key = $9,
			is_active = $10,
			updated_at = $11
		WHERE id = $1
	`,
		user.ID.String(),
		user.Username,
		user.Email,
		user.Bio,
		user.FirstName,
		user.LastName,
		user.DateOfBirth,
		genderToStringPtr(user.Gender),
		user.ProfilePhotoKey,
		user.IsActive,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("CONFLICT").
				With("username", user.Username).
				Wrap(auth.ErrConflict)
		}
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", user.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", user.ID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// UpdatePassword replaces only the password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), passwordHash, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_PASSWORD_FAILED").
			With("operation", "update password").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// SetVerificationToken replaces any pending verification token hash.
func (r *UserRepository) SetVerificationToken(ctx context.Context, id ulid.ULID, tokenHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET verification_token = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), tokenHash, time.Now())
	if err != nil {
		return oops.Code("USER_SET_TOKEN_FAILED").
			With("operation", "set verification token").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// ConsumeVerificationToken marks the owning user verified and clears the
// token in one statement, so a token can be consumed exactly once.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, tokenHash string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET email_verified = TRUE, verification_token = NULL, updated_at = $2
		WHERE verification_token = $1
		RETURNING `+userColumns+`
	`, tokenHash, time.Now())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_CONSUME_TOKEN_FAILED").
			With("operation", "consume verification token").
			Wrap(err)
	}
	return user, nil
}

// LinkSocialIdentity attaches a provider identity to an existing user and
// marks the email verified (provider attestation).
func (r *UserRepository) LinkSocialIdentity(ctx context.Context, id ulid.ULID, provider, providerID string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET social_provider = $2, social_provider_id = $3,
			email_verified = TRUE, updated_at = $4
		WHERE id = $1
	`, id.String(), provider, providerID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("CONFLICT").
				With("provider", provider).
				Wrap(auth.ErrConflict)
		}
		return oops.Code("USER_LINK_IDENTITY_FAILED").
			With("operation", "link social identity").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Delete removes a user. Owned entity rows cascade via foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM users WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "delete user").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr             string
		username          string
		email             string
		passwordHash      *string
		bio               *string
		firstName         *string
		lastName          *string
		dateOfBirth       *time.Time
		genderStr         *string
		profilePhotoKey   *string
		emailVerified     bool
		verificationToken *string
		socialProvider    *string
		socialProviderID  *string
		isActive          bool
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := row.Scan(
		&idStr,
		&username,
		&email,
		&passwordHash,
		&bio,
		&firstName,
		&lastName,
		&dateOfBirth,
		&genderStr,
		&profilePhotoKey,
		&emailVerified,
		&verificationToken,
		&socialProvider,
		&socialProviderID,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}

	var gender *auth.Gender
	if genderStr != nil {
		g := auth.Gender(*genderStr)
		gender = &g
	}

	return &auth.User{
		ID:                id,
		Username:          username,
		Email:             email,
		PasswordHash:      passwordHash,
		Bio:               bio,
		FirstName:         firstName,
		LastName:          lastName,
		DateOfBirth:       dateOfBirth,
		Gender:            gender,
		ProfilePhotoKey:   profilePhotoKey,
		EmailVerified:     emailVerified,
		VerificationToken: verificationToken,
		SocialProvider:    socialProvider,
		SocialProviderID:  socialProviderID,
		IsActive:          isActive,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

// genderToStringPtr converts a Gender pointer for SQL parameters.
func genderToStringPtr(g *auth.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
