// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package httpapi exposes the authentication and tracker services over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	"github.com/deepworktimer/deepworktimer/internal/observability"
	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

// sessionCookieName is the cookie carrying the opaque session token.
const sessionCookieName = "dwt_session"

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	// Domain scopes the cookie; empty means host-only.
	Domain string
	// Secure marks the cookie HTTPS-only. Disable for local development only.
	Secure bool
}

// Deps bundles the services the API serves. Metrics is optional; all other
// fields are required.
type Deps struct {
	Login        *auth.LoginService
	Accounts     *auth.AccountService
	Verification *auth.VerificationService
	Social       *auth.SocialService
	Tracker      *tracker.Service
	Metrics      *observability.Metrics
	Cookie       CookieConfig
	Logger       *slog.Logger
}

// Server is the public HTTP API server.
type Server struct {
	addr         string
	login        *auth.LoginService
	accounts     *auth.AccountService
	verification *auth.VerificationService
	social       *auth.SocialService
	tracker      *tracker.Service
	metrics      *observability.Metrics
	cookie       CookieConfig
	logger       *slog.Logger

	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates an API server listening on addr once started.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Login == nil {
		return nil, oops.Errorf("login service is required")
	}
	if deps.Accounts == nil {
		return nil, oops.Errorf("account service is required")
	}
	if deps.Verification == nil {
		return nil, oops.Errorf("verification service is required")
	}
	if deps.Social == nil {
		return nil, oops.Errorf("social service is required")
	}
	if deps.Tracker == nil {
		return nil, oops.Errorf("tracker service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:         addr,
		login:        deps.Login,
		accounts:     deps.Accounts,
		verification: deps.Verification,
		social:       deps.Social,
		tracker:      deps.Tracker,
		metrics:      deps.Metrics,
		cookie:       deps.Cookie,
		logger:       logger,
	}, nil
}

// Handler returns the route table. Exposed for tests and embedding.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("POST /auth/verify-email", s.handleVerifyEmail)
	mux.HandleFunc("POST /auth/resend-verification", s.handleResendVerification)
	mux.HandleFunc("POST /auth/social-login", s.handleSocialLogin)
	mux.HandleFunc("POST /auth/change-password", s.requireSession(s.handleChangePassword))

	mux.HandleFunc("GET /users/me", s.requireSession(s.handleCurrentUser))
	mux.HandleFunc("PATCH /users/me", s.requireSession(s.handleUpdateProfile))
	mux.HandleFunc("DELETE /users/me", s.requireSession(s.handleDeleteAccount))

	mux.HandleFunc("GET /daily-goals", s.requireSession(s.handleListDailyGoals))
	mux.HandleFunc("POST /daily-goals", s.requireSession(s.handleCreateDailyGoal))
	mux.HandleFunc("GET /daily-goals/{id}", s.requireSession(s.handleGetDailyGoal))
	mux.HandleFunc("PATCH /daily-goals/{id}", s.requireSession(s.handleUpdateDailyGoal))
	mux.HandleFunc("DELETE /daily-goals/{id}", s.requireSession(s.handleDeleteDailyGoal))
	mux.HandleFunc("POST /daily-goals/{id}/select", s.requireSession(s.selectHandler(tracker.KindDailyGoal)))

	mux.HandleFunc("GET /study-categories", s.requireSession(s.handleListStudyCategories))
	mux.HandleFunc("POST /study-categories", s.requireSession(s.handleCreateStudyCategory))
	mux.HandleFunc("GET /study-categories/{id}", s.requireSession(s.handleGetStudyCategory))
	mux.HandleFunc("PATCH /study-categories/{id}", s.requireSession(s.handleRenameStudyCategory))
	mux.HandleFunc("DELETE /study-categories/{id}", s.requireSession(s.handleDeleteStudyCategory))
	mux.HandleFunc("POST /study-categories/{id}/select", s.requireSession(s.selectHandler(tracker.KindStudyCategory)))

	mux.HandleFunc("GET /session-counters", s.requireSession(s.handleListSessionCounters))
	mux.HandleFunc("POST /session-counters", s.requireSession(s.handleCreateSessionCounter))
	mux.HandleFunc("GET /session-counters/{id}", s.requireSession(s.handleGetSessionCounter))
	mux.HandleFunc("DELETE /session-counters/{id}", s.requireSession(s.handleDeleteSessionCounter))
	mux.HandleFunc("POST /session-counters/{id}/select", s.requireSession(s.selectHandler(tracker.KindSessionCounter)))
	mux.HandleFunc("POST /session-counters/{id}/increment", s.requireSession(s.handleIncrementSessionCounter))
	mux.HandleFunc("POST /session-counters/{id}/reset", s.requireSession(s.handleResetSessionCounter))

	mux.HandleFunc("GET /time-settings", s.requireSession(s.handleListTimeSettings))
	mux.HandleFunc("POST /time-settings", s.requireSession(s.handleCreateTimeSettings))
	mux.HandleFunc("GET /time-settings/{id}", s.requireSession(s.handleGetTimeSettings))
	mux.HandleFunc("PATCH /time-settings/{id}", s.requireSession(s.handleUpdateTimeSettings))
	mux.HandleFunc("DELETE /time-settings/{id}", s.requireSession(s.handleDeleteTimeSettings))
	mux.HandleFunc("POST /time-settings/{id}/select", s.requireSession(s.selectHandler(tracker.KindTimeSettings)))

	return mux
}

// Start begins serving the API. It returns an error channel that receives any
// error from the HTTP server after startup; the channel is closed on graceful
// stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown api server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" when stopped.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// setSessionCookie installs the session cookie on a successful login.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   s.cookie.Domain,
		MaxAge:   int(s.login.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
