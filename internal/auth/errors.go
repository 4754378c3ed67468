// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import "errors"

// Sentinel errors for the authentication domain. Services wrap these with
// oops codes; callers branch with errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for a bad username/password pair.
	// Unknown usernames and social-only accounts fail with this same error.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotVerified is returned when a local account authenticates
	// with the correct password but has not verified its email address.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrConflict is returned on username/email/provider-id uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrForbidden is returned when the caller is authenticated but not
	// allowed to perform the action (e.g. wrong current password).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidToken is returned for a verification token that is consumed,
	// expired, or was never issued. The cause is intentionally not distinguished.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAlreadyVerified is returned when re-requesting verification for a
	// verified account.
	ErrAlreadyVerified = errors.New("already verified")

	// ErrProviderUnavailable is returned when a social provider cannot be reached.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderDataIncomplete is returned when a social provider responds
	// without the fields required to resolve an account.
	ErrProviderDataIncomplete = errors.New("provider data incomplete")

	// ErrStoreUnavailable is returned when the session store cannot be
	// reached. Callers must fail closed, not treat the request as anonymous.
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrUsernameExhausted is returned when username generation runs out of
	// retries during social account creation.
	ErrUsernameExhausted = errors.New("username generation exhausted")
)
