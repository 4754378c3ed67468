// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with numbers", "alice42", false},
		{"valid with underscores", "deep_worker_1", false},
		{"valid minimum length", "abc", false},
		{"valid maximum length", "a" + strings.Repeat("b", 29), false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", "a" + strings.Repeat("b", 30), true},
		{"starts with digit", "1alice", true},
		{"starts with underscore", "_alice", true},
		{"contains hyphen", "ali-ce", true},
		{"contains space", "ali ce", true},
		{"contains unicode", "alicé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus", "user+tag@example.com", false},
		{"empty", "", true},
		{"missing at", "userexample.com", true},
		{"missing domain", "user@", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, auth.ValidatePassword("12345678"))
	assert.Error(t, auth.ValidatePassword("1234567"))
	assert.Error(t, auth.ValidatePassword(""))
}

func TestNewLocalUser(t *testing.T) {
	t.Run("creates unverified account with password", func(t *testing.T) {
		user, err := auth.NewLocalUser("alice", "alice@example.com", "somehash")
		require.NoError(t, err)
		assert.False(t, user.EmailVerified)
		assert.True(t, user.HasPassword())
		assert.False(t, user.HasSocialIdentity())
		assert.True(t, user.IsActive)
		assert.NotZero(t, user.ID)
	})

	t.Run("rejects empty hash", func(t *testing.T) {
		_, err := auth.NewLocalUser("alice", "alice@example.com", "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		_, err := auth.NewLocalUser("1alice", "alice@example.com", "somehash")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := auth.NewLocalUser("alice", "not-an-email", "somehash")
		assert.Error(t, err)
	})
}

func TestNewSocialUser(t *testing.T) {
	t.Run("creates pre-verified password-less account", func(t *testing.T) {
		user, err := auth.NewSocialUser("alice", "alice@example.com", auth.ProviderGoogle, "g-1")
		require.NoError(t, err)
		assert.True(t, user.EmailVerified, "provider attestation stands in for verification")
		assert.False(t, user.HasPassword())
		assert.True(t, user.HasSocialIdentity())
	})

	t.Run("rejects missing provider id", func(t *testing.T) {
		_, err := auth.NewSocialUser("alice", "alice@example.com", auth.ProviderGoogle, "")
		assert.Error(t, err)
	})
}
