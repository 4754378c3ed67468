// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package provider

import (
	"context"
	"net/http"
	"strconv"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

// defaultGitHubAPIURL is GitHub's REST API base.
const defaultGitHubAPIURL = "https://api.github.com"

// GitHub resolves GitHub access tokens to profiles.
//
// GitHub hides the account email when the user marks it private, so a
// second request to /user/emails recovers the primary verified address
// when /user returns none.
type GitHub struct {
	apiURL string
}

// NewGitHub creates a GitHub provider against the production API.
func NewGitHub() *GitHub {
	return &GitHub{apiURL: defaultGitHubAPIURL}
}

// NewGitHubWithBaseURL creates a GitHub provider against an alternative API
// base. Used by tests.
func NewGitHubWithBaseURL(apiURL string) *GitHub {
	return &GitHub{apiURL: apiURL}
}

// Name returns the stable provider key.
func (g *GitHub) Name() string { return auth.ProviderGitHub }

// FetchProfile resolves an access token via the /user endpoint, falling
// back to /user/emails for accounts with a private email.
func (g *GitHub) FetchProfile(ctx context.Context, accessToken string) (auth.Profile, error) {
	var user struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	client := tokenClient(ctx, accessToken)
	if err := fetchJSON(ctx, client, g.Name(), g.apiURL+"/user", &user); err != nil {
		return auth.Profile{}, err
	}

	email := user.Email
	if email == "" {
		primary, err := g.fetchPrimaryEmail(ctx, client)
		if err != nil {
			return auth.Profile{}, err
		}
		email = primary
	}

	displayName := user.Name
	if displayName == "" {
		displayName = user.Login
	}

	return auth.Profile{
		ProviderUserID: strconv.FormatInt(user.ID, 10),
		Email:          email,
		DisplayName:    displayName,
	}, nil
}

// fetchPrimaryEmail returns the primary verified email, or empty when the
// token lacks email scope. Profile validation catches the empty case.
func (g *GitHub) fetchPrimaryEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}

	if err := fetchJSON(ctx, client, g.Name(), g.apiURL+"/user/emails", &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}

// Compile-time interface check.
var _ auth.IdentityProvider = (*GitHub)(nil)
