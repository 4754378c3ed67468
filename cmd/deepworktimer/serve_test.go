// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	"github.com/deepworktimer/deepworktimer/internal/config"
)

type fakeDatabase struct {
	closed bool
}

func (f *fakeDatabase) Pool() *pgxpool.Pool { return nil }
func (f *fakeDatabase) Close()              { f.closed = true }

type fakeMigrator struct {
	upCalled bool
	upErr    error
}

func (f *fakeMigrator) Up() error    { f.upCalled = true; return f.upErr }
func (f *fakeMigrator) Close() error { return nil }

type fakeSessionStore struct {
	closed bool
}

func (f *fakeSessionStore) Create(context.Context, ulid.ULID, time.Duration) (string, error) {
	return "token", nil
}

func (f *fakeSessionStore) Validate(context.Context, string) (ulid.ULID, bool, error) {
	return ulid.ULID{}, false, nil
}

func (f *fakeSessionStore) Invalidate(context.Context, string) error { return nil }
func (f *fakeSessionStore) Close() error                             { f.closed = true; return nil }

type fakeMailer struct{}

func (fakeMailer) SendVerification(context.Context, string, string) error { return nil }

func testServeConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Observability.Addr = "127.0.0.1:0"
	cfg.Database.URL = "postgres://localhost:5432/deepwork"
	cfg.Redis.URL = "redis://localhost:6379/0"
	cfg.Session.TTL = time.Hour
	cfg.Frontend.URL = "http://localhost:3000"
	cfg.Log.Format = "text"
	cfg.Log.Level = "error"
	return cfg
}

func testServeDeps(db *fakeDatabase, migrator *fakeMigrator, sessions *fakeSessionStore) *ServeDeps {
	return &ServeDeps{
		LoadConfig: func(string, *pflag.FlagSet) (*config.Config, error) {
			return testServeConfig(), nil
		},
		NewDatabase: func(context.Context, string) (Database, error) {
			return db, nil
		},
		NewMigrator: func(string) (Migrator, error) {
			return migrator, nil
		},
		NewSessionStore: func(context.Context, string, time.Duration) (auth.SessionStore, error) {
			return sessions, nil
		},
		NewMailer: func(*config.Config) (auth.Mailer, error) {
			return fakeMailer{}, nil
		},
	}
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd
}

func TestRunServe(t *testing.T) {
	t.Run("starts, serves, and shuts down on context cancel", func(t *testing.T) {
		db := &fakeDatabase{}
		migrator := &fakeMigrator{}
		sessions := &fakeSessionStore{}

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		err := runServe(ctx, testCommand(), true, testServeDeps(db, migrator, sessions))

		require.NoError(t, err)
		assert.True(t, migrator.upCalled)
		assert.True(t, db.closed)
		assert.True(t, sessions.closed)
	})

	t.Run("skips migrations when auto-migrate is off", func(t *testing.T) {
		db := &fakeDatabase{}
		migrator := &fakeMigrator{}
		sessions := &fakeSessionStore{}

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		err := runServe(ctx, testCommand(), false, testServeDeps(db, migrator, sessions))

		require.NoError(t, err)
		assert.False(t, migrator.upCalled)
	})

	t.Run("propagates a config load failure", func(t *testing.T) {
		deps := testServeDeps(&fakeDatabase{}, &fakeMigrator{}, &fakeSessionStore{})
		deps.LoadConfig = func(string, *pflag.FlagSet) (*config.Config, error) {
			return nil, errors.New("bad config")
		}

		err := runServe(context.Background(), testCommand(), false, deps)

		require.EqualError(t, err, "bad config")
	})

	t.Run("propagates a database connect failure", func(t *testing.T) {
		db := &fakeDatabase{}
		deps := testServeDeps(db, &fakeMigrator{}, &fakeSessionStore{})
		deps.NewDatabase = func(context.Context, string) (Database, error) {
			return nil, errors.New("db down")
		}

		err := runServe(context.Background(), testCommand(), false, deps)

		require.EqualError(t, err, "db down")
	})

	t.Run("fails when migrations cannot be applied", func(t *testing.T) {
		db := &fakeDatabase{}
		migrator := &fakeMigrator{upErr: errors.New("migration broken")}
		deps := testServeDeps(db, migrator, &fakeSessionStore{})

		err := runServe(context.Background(), testCommand(), true, deps)

		require.EqualError(t, err, "migration broken")
		assert.True(t, db.closed)
	})

	t.Run("propagates a session store failure", func(t *testing.T) {
		deps := testServeDeps(&fakeDatabase{}, &fakeMigrator{}, &fakeSessionStore{})
		deps.NewSessionStore = func(context.Context, string, time.Duration) (auth.SessionStore, error) {
			return nil, errors.New("redis down")
		}

		err := runServe(context.Background(), testCommand(), false, deps)

		require.EqualError(t, err, "redis down")
	})
}

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("auto-migrate"))
}
