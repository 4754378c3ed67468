// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package auth provides authentication primitives for the deepworktimer backend.
//
// # Domain Types
//
// User instances should be created through NewLocalUser or NewSocialUser,
// which validate username and email and enforce the credential invariant
// (password hash or social identity, never neither). Direct struct
// initialization bypasses validation and may create invalid state.
//
// # Services
//
// Service types coordinate domain operations:
//   - LoginService - credential authentication, session validation, logout
//   - AccountService - registration, password change, profile edits
//   - VerificationService - single-use email verification tokens
//   - SocialService - provider identity resolution and account linking
//
// Services are created with New*Service constructors that validate
// dependencies. Persistence and the session store live behind the
// UserRepository and SessionStore interfaces; drivers are in the postgres
// and redis subpackages.
package auth
