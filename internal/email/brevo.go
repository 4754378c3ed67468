// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package email dispatches transactional account emails through the Brevo
// REST API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/samber/oops"
)

// defaultBrevoBaseURL is the production Brevo API endpoint.
const defaultBrevoBaseURL = "https://api.brevo.com"

// sendTimeout caps a single dispatch request.
const sendTimeout = 15 * time.Second

// ErrSendFailed is returned when the provider rejects or cannot accept a
// message.
var ErrSendFailed = errors.New("email send failed")

// Sender identifies the from-address on outgoing mail.
type Sender struct {
	Name  string
	Email string
}

// BrevoClient sends transactional email via Brevo's /v3/smtp/email endpoint.
type BrevoClient struct {
	apiKey     string
	baseURL    string
	sender     Sender
	httpClient *http.Client
}

// NewBrevoClient creates a client against the production Brevo API.
func NewBrevoClient(apiKey string, sender Sender) (*BrevoClient, error) {
	return NewBrevoClientWithBaseURL(apiKey, sender, defaultBrevoBaseURL)
}

// NewBrevoClientWithBaseURL creates a client against an alternative endpoint.
// Used by tests.
func NewBrevoClientWithBaseURL(apiKey string, sender Sender, baseURL string) (*BrevoClient, error) {
	if apiKey == "" {
		return nil, oops.Errorf("brevo api key is required")
	}
	if sender.Email == "" {
		return nil, oops.Errorf("sender email is required")
	}
	return &BrevoClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		sender:     sender,
		httpClient: &http.Client{Timeout: sendTimeout},
	}, nil
}

// brevoMessage is the wire shape of a Brevo transactional send.
type brevoMessage struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send dispatches a single HTML email.
func (c *BrevoClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := brevoMessage{
		Sender:      brevoAddress{Name: c.sender.Name, Email: c.sender.Email},
		To:          []brevoAddress{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return oops.Code("EMAIL_ENCODE_FAILED").Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return oops.Code("EMAIL_REQUEST_FAILED").Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return oops.Code("EMAIL_SEND_FAILED").
			With("operation", "post message").
			Wrap(errors.Join(ErrSendFailed, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return oops.Code("EMAIL_SEND_FAILED").
			With("status", resp.StatusCode).
			With("response", string(body)).
			Wrap(ErrSendFailed)
	}
	return nil
}
