// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/samber/oops"
)

// VerificationTokenBytes is the size of a verification token before hex encoding.
const VerificationTokenBytes = 32

// GenerateVerificationToken creates a single-use email verification token
// and its hash. Returns (plaintext_token, sha256_hash, error).
// The plaintext token goes into the verification link; only the hash is stored.
func GenerateVerificationToken() (token, hash string, err error) {
	tokenBytes := make([]byte, VerificationTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", oops.Code("VERIFY_TOKEN_GENERATE_FAILED").Wrap(err)
	}

	token = hex.EncodeToString(tokenBytes)
	hash = HashVerificationToken(token)

	return token, hash, nil
}

// HashVerificationToken computes the SHA256 hash of a verification token.
func HashVerificationToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Mailer dispatches account emails. Implementations are fire-and-forget from
// the domain's point of view: callers log failures and move on, relying on
// provider-side retry.
type Mailer interface {
	// SendVerification sends the verification link for token to the address.
	SendVerification(ctx context.Context, to, token string) error
}
