// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/samber/oops"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// statusFor maps domain sentinels to HTTP status codes. Unmapped errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailNotVerified),
		errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrNotFound),
		errors.Is(err, tracker.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrConflict),
		errors.Is(err, auth.ErrUsernameExhausted),
		errors.Is(err, tracker.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrAlreadyVerified),
		errors.Is(err, auth.ErrProviderDataIncomplete),
		errors.Is(err, tracker.ErrValidation),
		errors.Is(err, tracker.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrProviderUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, auth.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		// Field validation errors carry an oops code but no sentinel.
		if oopsErr, ok := oops.AsOops(err); ok {
			switch oopsErr.Code() {
			case "AUTH_INVALID_USERNAME", "AUTH_INVALID_EMAIL", "AUTH_INVALID_PASSWORD":
				return http.StatusBadRequest
			}
		}
		return http.StatusInternalServerError
	}
}

// writeError translates a domain error into an HTTP response. Internal errors
// are logged and their details withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	body := errorBody{Message: err.Error()}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := oopsErr.Code().(string); ok {
			body.Code = code
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
		if status == http.StatusInternalServerError {
			body = errorBody{Message: "internal error"}
		}
	}

	writeJSON(w, status, errorResponse{Error: body})
}

// writeErrorMessage writes a plain error envelope without a domain error.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client went away
	json.NewEncoder(w).Encode(v)
}

// maxBodyBytes bounds request bodies. The API only accepts small JSON
// documents.
const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
