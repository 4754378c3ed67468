// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi

import (
	"context"
	"net/http"

	"github.com/oklog/ulid/v2"
)

type contextKey int

const userIDKey contextKey = iota

// UserID extracts the authenticated user id placed by requireSession.
func UserID(ctx context.Context) (ulid.ULID, bool) {
	id, ok := ctx.Value(userIDKey).(ulid.ULID)
	return id, ok
}

// requireSession authenticates the request from the session cookie and puts
// the user id into the request context. A session store outage is a 503, not
// an anonymous request.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		userID, ok, err := s.login.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if !ok {
			s.clearSessionCookie(w)
			writeErrorMessage(w, http.StatusUnauthorized, "session expired or invalid")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// mustUserID reads the user id requireSession stored. Reaching a protected
// handler without one is a programming error, reported as a 500.
func (s *Server) mustUserID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	id, ok := UserID(r.Context())
	if !ok {
		s.logger.Error("handler reached without session", "path", r.URL.Path)
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
	return id, ok
}
