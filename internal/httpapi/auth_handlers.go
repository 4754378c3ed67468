// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/deepworktimer/deepworktimer/internal/auth"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.countRegistration()
	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.login.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.countLogin("invalid_credentials")
		case errors.Is(err, auth.ErrEmailNotVerified):
			s.countLogin("email_not_verified")
		default:
			s.countLogin("error")
		}
		s.writeError(w, r, err)
		return
	}

	s.countLogin("success")
	s.countSessionIssued()
	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// handleLogout invalidates the current session. Requests without a session
// cookie still succeed; logout is idempotent.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.login.Logout(r.Context(), cookie.Value); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.countSessionInvalidated()
	}

	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.verification.Verify(r.Context(), req.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

type resendVerificationRequest struct {
	// Identifier is a username or email address.
	Identifier string `json:"identifier"`
}

func (s *Server) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.verification.Resend(r.Context(), req.Identifier); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type socialLoginRequest struct {
	Provider    string `json:"provider"`
	AccessToken string `json:"access_token"`
}

func (s *Server) handleSocialLogin(w http.ResponseWriter, r *http.Request) {
	var req socialLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.social.Login(r.Context(), req.Provider, req.AccessToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.countSocialLogin(req.Provider)
	s.countSessionIssued()
	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.accounts.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	user, err := s.login.CurrentUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	Bio             *string `json:"bio"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	DateOfBirth     *string `json:"date_of_birth"`
	Gender          *string `json:"gender"`
	ProfilePhotoKey *string `json:"profile_photo_key"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := auth.ProfilePatch{
		Bio:             req.Bio,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfilePhotoKey: req.ProfilePhotoKey,
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateOnly, *req.DateOfBirth)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}
		patch.DateOfBirth = &dob
	}

	if req.Gender != nil {
		gender, valid := parseGender(*req.Gender)
		if !valid {
			writeErrorMessage(w, http.StatusBadRequest, "unrecognized gender value")
			return
		}
		patch.Gender = &gender
	}

	user, err := s.accounts.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	if err := s.accounts.DeleteAccount(r.Context(), userID); err != nil {
		s.writeError(w, r, err)
		return
	}

	// The account is gone; drop its session too. Logout is best effort here,
	// the row deletion already invalidated the user.
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.login.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.WarnContext(r.Context(), "session cleanup after account deletion failed", "error", err)
		} else {
			s.countSessionInvalidated()
		}
	}

	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func parseGender(value string) (auth.Gender, bool) {
	switch gender := auth.Gender(value); gender {
	case auth.GenderMale, auth.GenderFemale, auth.GenderOther, auth.GenderNotSpecified:
		return gender, true
	default:
		return "", false
	}
}
