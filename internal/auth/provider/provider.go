// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package provider implements auth.IdentityProvider for the integrated
// social login providers. Each provider exchanges a caller-supplied OAuth2
// access token for profile data over the provider's REST API; the OAuth2
// authorization dance itself happens in the frontend.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/samber/oops"
	"golang.org/x/oauth2"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

// requestTimeout caps a single profile fetch.
const requestTimeout = 10 * time.Second

// maxResponseBytes bounds provider response bodies.
const maxResponseBytes = 1 << 20

// tokenClient builds an HTTP client that attaches the access token as a
// bearer credential on every request.
func tokenClient(ctx context.Context, accessToken string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = requestTimeout
	return client
}

// fetchJSON performs an authenticated GET and decodes the JSON body into out.
// Transport failures and 5xx responses map to auth.ErrProviderUnavailable;
// 401/403 mean the token was rejected and map to auth.ErrInvalidCredentials.
func fetchJSON(ctx context.Context, client *http.Client, providerName, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return oops.Code("PROVIDER_REQUEST_FAILED").
			With("provider", providerName).
			Wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return oops.Code("PROVIDER_UNAVAILABLE").
			With("provider", providerName).
			Wrap(errors.Join(auth.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return oops.Code("PROVIDER_TOKEN_REJECTED").
			With("provider", providerName).
			With("status", resp.StatusCode).
			Wrap(auth.ErrInvalidCredentials)
	case resp.StatusCode != http.StatusOK:
		return oops.Code("PROVIDER_UNAVAILABLE").
			With("provider", providerName).
			With("status", resp.StatusCode).
			Wrap(auth.ErrProviderUnavailable)
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return oops.Code("PROVIDER_RESPONSE_INVALID").
			With("provider", providerName).
			Wrap(errors.Join(auth.ErrProviderUnavailable, err))
	}
	return nil
}
