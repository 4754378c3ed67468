// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Integrated social providers.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// usernameSuffixRetries bounds username generation during social signup.
// The upstream flow retried forever; a bound turns a pathological collision
// storm into a clean error instead of a stuck request.
const usernameSuffixRetries = 5

// Profile is the provider-attested identity used to resolve an account.
type Profile struct {
	ProviderUserID string
	Email          string
	DisplayName    string
}

// Validate checks that the provider returned the fields account resolution
// requires.
func (p Profile) Validate() error {
	if p.ProviderUserID == "" {
		return oops.Code("PROVIDER_DATA_INCOMPLETE").
			With("missing", "provider user id").
			Wrap(ErrProviderDataIncomplete)
	}
	if p.Email == "" {
		return oops.Code("PROVIDER_DATA_INCOMPLETE").
			With("missing", "email").
			Wrap(ErrProviderDataIncomplete)
	}
	return nil
}

// IdentityProvider exchanges a provider access token for profile data.
// All calls are untrusted external I/O: transport failures surface as
// ErrProviderUnavailable, missing fields as ErrProviderDataIncomplete.
type IdentityProvider interface {
	// Name returns the stable provider key ("google", "github").
	Name() string

	// FetchProfile resolves an access token to the provider's profile data.
	FetchProfile(ctx context.Context, accessToken string) (Profile, error)
}

// GenerateUsername derives a candidate username from a display name plus a
// random 4-hex-digit suffix. The attempt number only varies the randomness,
// keeping candidates uniform across retries.
func GenerateUsername(displayName string) (string, error) {
	base := sanitizeUsername(displayName)

	var suffix [2]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", oops.Code("AUTH_USERNAME_GENERATE_FAILED").Wrap(err)
	}

	candidate := fmt.Sprintf("%s_%02x%02x", base, suffix[0], suffix[1])
	if len(candidate) > MaxUsernameLength {
		candidate = candidate[len(candidate)-MaxUsernameLength:]
		// Re-anchor on a letter after truncation.
		candidate = "u" + candidate[1:]
	}
	return candidate, nil
}

// sanitizeUsername reduces a display name to the allowed username alphabet.
func sanitizeUsername(displayName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(displayName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune('_')
		}
	}
	base := strings.Trim(b.String(), "_")
	if base == "" || base[0] < 'a' || base[0] > 'z' {
		base = "user" + base
	}
	if len(base) > MaxUsernameLength-5 {
		base = base[:MaxUsernameLength-5]
	}
	return base
}
