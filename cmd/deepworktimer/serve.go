// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	authpg "github.com/deepworktimer/deepworktimer/internal/auth/postgres"
	"github.com/deepworktimer/deepworktimer/internal/auth/provider"
	"github.com/deepworktimer/deepworktimer/internal/httpapi"
	"github.com/deepworktimer/deepworktimer/internal/logging"
	"github.com/deepworktimer/deepworktimer/internal/observability"
	"github.com/deepworktimer/deepworktimer/internal/tracker"
	trackerpg "github.com/deepworktimer/deepworktimer/internal/tracker/postgres"
)

// shutdownTimeout caps graceful server shutdown.
const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API and observability servers",
		Long: `Start the HTTP API server together with the metrics and health
endpoint server. Configuration is read from the config file, environment
(DWT_ prefix), and flags, in increasing precedence.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, autoMigrate, nil)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "apply pending database migrations before serving")

	return cmd
}

// runServe starts the server with injectable dependencies. If deps is nil,
// production implementations are used.
func runServe(ctx context.Context, cmd *cobra.Command, autoMigrate bool, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	deps.applyDefaults()

	cfg, err := deps.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("deepworktimer", version, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	logger := slog.Default()

	db, err := deps.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("connected to database")

	if autoMigrate {
		if err := migrateUp(deps, cfg.Database.URL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	sessions, err := deps.NewSessionStore(ctx, cfg.Redis.URL, cfg.Session.TTL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sessions.Close(); closeErr != nil {
			logger.Warn("error closing session store", "error", closeErr)
		}
	}()

	mailer, err := deps.NewMailer(cfg)
	if err != nil {
		return err
	}

	pool := db.Pool()
	users := authpg.NewUserRepository(pool)
	hasher := auth.NewArgon2idHasher()

	login, err := auth.NewLoginServiceWithOptions(users, sessions, hasher, cfg.Session.TTL, logger)
	if err != nil {
		return err
	}
	accounts, err := auth.NewAccountServiceWithLogger(users, hasher, mailer, logger)
	if err != nil {
		return err
	}
	verification, err := auth.NewVerificationServiceWithLogger(users, mailer, logger)
	if err != nil {
		return err
	}
	social, err := auth.NewSocialServiceWithOptions(users, sessions, cfg.Session.TTL, logger,
		provider.NewGoogle(), provider.NewGitHub())
	if err != nil {
		return err
	}

	trackerSvc, err := tracker.NewServiceWithLogger(
		trackerpg.NewDailyGoalRepository(pool),
		trackerpg.NewStudyCategoryRepository(pool),
		trackerpg.NewSessionCounterRepository(pool),
		trackerpg.NewTimeSettingsRepository(pool),
		trackerpg.NewSelectionStore(pool),
		logger,
	)
	if err != nil {
		return err
	}

	obs := observability.NewServer(cfg.Observability.Addr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})

	api, err := httpapi.NewServer(cfg.Server.Addr, httpapi.Deps{
		Login:        login,
		Accounts:     accounts,
		Verification: verification,
		Social:       social,
		Tracker:      trackerSvc,
		Metrics:      obs.Metrics(),
		Cookie: httpapi.CookieConfig{
			Domain: cfg.Session.Cookie.Domain,
			Secure: cfg.Session.Cookie.Secure,
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obsErrCh, err := obs.Start()
	if err != nil {
		return err
	}
	go monitorServerErrors(ctx, cancel, obsErrCh, "observability")

	apiErrCh, err := api.Start()
	if err != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		if stopErr := obs.Stop(stopCtx); stopErr != nil {
			logger.Warn("failed to stop observability server during cleanup", "error", stopErr)
		}
		return err
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "api")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("DeepWork Timer started")
	logger.Info("server ready",
		"api_addr", api.Addr(),
		"observability_addr", obs.Addr(),
	)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := api.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	if err := obs.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping observability server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// migrateUp applies all pending migrations.
func migrateUp(deps *ServeDeps, dsn string) error {
	migrator, err := deps.NewMigrator(dsn)
	if err != nil {
		return err
	}
	upErr := migrator.Up()
	if closeErr := migrator.Close(); closeErr != nil && upErr == nil {
		return closeErr
	}
	return upErr
}

// monitorServerErrors cancels the serve context when a server reports a
// fatal error, so one failing listener brings the process down cleanly.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
