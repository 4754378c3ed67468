// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package provider

import (
	"context"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

// defaultGoogleUserInfoURL is Google's OpenID userinfo endpoint.
const defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google resolves Google access tokens to profiles.
type Google struct {
	userInfoURL string
}

// NewGoogle creates a Google provider against the production API.
func NewGoogle() *Google {
	return &Google{userInfoURL: defaultGoogleUserInfoURL}
}

// NewGoogleWithBaseURL creates a Google provider against an alternative
// userinfo endpoint. Used by tests.
func NewGoogleWithBaseURL(userInfoURL string) *Google {
	return &Google{userInfoURL: userInfoURL}
}

// Name returns the stable provider key.
func (g *Google) Name() string { return auth.ProviderGoogle }

// FetchProfile resolves an access token via the userinfo endpoint.
func (g *Google) FetchProfile(ctx context.Context, accessToken string) (auth.Profile, error) {
	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	client := tokenClient(ctx, accessToken)
	if err := fetchJSON(ctx, client, g.Name(), g.userInfoURL, &info); err != nil {
		return auth.Profile{}, err
	}

	return auth.Profile{
		ProviderUserID: info.ID,
		Email:          info.Email,
		DisplayName:    info.Name,
	}, nil
}

// Compile-time interface check.
var _ auth.IdentityProvider = (*Google)(nil)
