// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package email

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/samber/oops"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

// Transport sends a composed message. BrevoClient is the production
// implementation.
type Transport interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Gateway composes account emails and hands them to a Transport.
type Gateway struct {
	transport   Transport
	frontendURL string
	appName     string
}

// NewGateway creates a Gateway. frontendURL is the base the verification
// link points at, e.g. "https://app.deepworktimer.io".
func NewGateway(transport Transport, frontendURL, appName string) (*Gateway, error) {
	if transport == nil {
		return nil, oops.Errorf("transport is required")
	}
	if frontendURL == "" {
		return nil, oops.Errorf("frontend url is required")
	}
	if _, err := url.Parse(frontendURL); err != nil {
		return nil, oops.Errorf("frontend url is invalid: %w", err)
	}
	if appName == "" {
		appName = "DeepWork Timer"
	}
	return &Gateway{
		transport:   transport,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		appName:     appName,
	}, nil
}

// SendVerification sends the email verification link for token.
func (g *Gateway) SendVerification(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", g.frontendURL, url.QueryEscape(token))
	subject := fmt.Sprintf("Verify your %s account", g.appName)
	body := fmt.Sprintf(`<html><body>
<p>Welcome to %[1]s!</p>
<p>Click the link below to verify your email address. The link is valid for a single use.</p>
<p><a href="%[2]s">Verify my email</a></p>
<p>If you did not create a %[1]s account, you can ignore this message.</p>
</body></html>`, html.EscapeString(g.appName), link)

	if err := g.transport.Send(ctx, to, subject, body); err != nil {
		return oops.Code("EMAIL_VERIFICATION_SEND_FAILED").
			With("operation", "send verification email").
			Wrap(err)
	}
	return nil
}

// VerificationLink returns the link a token resolves to. Exposed for tests
// and for logging in development mode.
func (g *Gateway) VerificationLink(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", g.frontendURL, url.QueryEscape(token))
}

// Compile-time interface check.
var _ auth.Mailer = (*Gateway)(nil)
