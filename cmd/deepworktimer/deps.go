// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	authredis "github.com/deepworktimer/deepworktimer/internal/auth/redis"
	"github.com/deepworktimer/deepworktimer/internal/config"
	"github.com/deepworktimer/deepworktimer/internal/email"
	"github.com/deepworktimer/deepworktimer/internal/store"
)

// Database is the relational store handle serve wires repositories onto.
type Database interface {
	Pool() *pgxpool.Pool
	Close()
}

// Migrator runs schema migrations at startup.
type Migrator interface {
	Up() error
	Close() error
}

// ServeDeps holds injectable factories for the serve command. Nil fields get
// production defaults; tests substitute fakes.
type ServeDeps struct {
	LoadConfig      func(path string, flags *pflag.FlagSet) (*config.Config, error)
	NewDatabase     func(ctx context.Context, dsn string) (Database, error)
	NewMigrator     func(dsn string) (Migrator, error)
	NewSessionStore func(ctx context.Context, url string, ttl time.Duration) (auth.SessionStore, error)
	NewMailer       func(cfg *config.Config) (auth.Mailer, error)
}

func (deps *ServeDeps) applyDefaults() {
	if deps.LoadConfig == nil {
		deps.LoadConfig = config.Load
	}
	if deps.NewDatabase == nil {
		deps.NewDatabase = func(ctx context.Context, dsn string) (Database, error) {
			return store.NewPostgres(ctx, dsn)
		}
	}
	if deps.NewMigrator == nil {
		deps.NewMigrator = func(dsn string) (Migrator, error) {
			return store.NewMigrator(dsn)
		}
	}
	if deps.NewSessionStore == nil {
		deps.NewSessionStore = func(ctx context.Context, url string, ttl time.Duration) (auth.SessionStore, error) {
			return authredis.NewSessionStoreWithTTL(ctx, url, ttl)
		}
	}
	if deps.NewMailer == nil {
		deps.NewMailer = newMailer
	}
}

// newMailer builds the verification email path. Without a Brevo API key the
// server still runs, logging instead of sending, so local setups work
// without an email account.
func newMailer(cfg *config.Config) (auth.Mailer, error) {
	var transport email.Transport
	if cfg.Email.APIKey == "" {
		slog.Warn("no email api key configured, verification emails will be logged, not sent")
		transport = logTransport{}
	} else {
		client, err := email.NewBrevoClient(cfg.Email.APIKey, email.Sender{
			Name:  cfg.Email.SenderName,
			Email: cfg.Email.SenderAddress,
		})
		if err != nil {
			return nil, err
		}
		transport = client
	}
	return email.NewGateway(transport, cfg.Frontend.URL, "")
}

// logTransport drops outgoing mail, recording only the recipient.
type logTransport struct{}

func (logTransport) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("email suppressed", "to", to, "subject", subject)
	return nil
}
