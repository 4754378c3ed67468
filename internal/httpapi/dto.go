// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi

import (
	"time"

	"github.com/deepworktimer/deepworktimer/internal/auth"
	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

// dateOnly is the wire format for date-of-birth values.
const dateOnly = "2006-01-02"

type userResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Bio             *string `json:"bio"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	DateOfBirth     *string `json:"date_of_birth"`
	Gender          *string `json:"gender"`
	ProfilePhotoKey *string `json:"profile_photo_key"`
	EmailVerified   bool    `json:"email_verified"`
	SocialProvider  *string `json:"social_provider"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func newUserResponse(u *auth.User) userResponse {
	resp := userResponse{
		ID:              u.ID.String(),
		Username:        u.Username,
		Email:           u.Email,
		Bio:             u.Bio,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfilePhotoKey: u.ProfilePhotoKey,
		EmailVerified:   u.EmailVerified,
		SocialProvider:  u.SocialProvider,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format(dateOnly)
		resp.DateOfBirth = &dob
	}
	if u.Gender != nil {
		gender := string(*u.Gender)
		resp.Gender = &gender
	}
	return resp
}

type dailyGoalResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Quantity   int    `json:"quantity"`
	BlockSize  int    `json:"block_size"`
	IsSelected bool   `json:"is_selected"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func newDailyGoalResponse(g *tracker.DailyGoal) dailyGoalResponse {
	return dailyGoalResponse{
		ID:         g.ID.String(),
		UserID:     g.UserID.String(),
		Quantity:   g.Quantity,
		BlockSize:  g.BlockSize,
		IsSelected: g.IsSelected,
		CreatedAt:  g.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  g.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type studyCategoryResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Title      string `json:"title"`
	IsSelected bool   `json:"is_selected"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func newStudyCategoryResponse(c *tracker.StudyCategory) studyCategoryResponse {
	return studyCategoryResponse{
		ID:         c.ID.String(),
		UserID:     c.UserID.String(),
		Title:      c.Title,
		IsSelected: c.IsSelected,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type sessionCounterResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Target     int    `json:"target"`
	Completed  int    `json:"completed"`
	IsSelected bool   `json:"is_selected"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func newSessionCounterResponse(c *tracker.SessionCounter) sessionCounterResponse {
	return sessionCounterResponse{
		ID:         c.ID.String(),
		UserID:     c.UserID.String(),
		Target:     c.Target,
		Completed:  c.Completed,
		IsSelected: c.IsSelected,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type timeSettingsResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	IsCountdown       bool   `json:"is_countdown"`
	Duration          *int   `json:"duration"`
	ShortBreakMinutes *int   `json:"short_break_minutes"`
	LongBreakMinutes  *int   `json:"long_break_minutes"`
	LongBreakInterval *int   `json:"long_break_interval"`
	IsSound           *bool  `json:"is_sound"`
	SoundInterval     *int   `json:"sound_interval"`
	IsSelected        bool   `json:"is_selected"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func newTimeSettingsResponse(s *tracker.TimeSettings) timeSettingsResponse {
	return timeSettingsResponse{
		ID:                s.ID.String(),
		UserID:            s.UserID.String(),
		IsCountdown:       s.IsCountdown,
		Duration:          s.Duration,
		ShortBreakMinutes: s.ShortBreakMinutes,
		LongBreakMinutes:  s.LongBreakMinutes,
		LongBreakInterval: s.LongBreakInterval,
		IsSound:           s.IsSound,
		SoundInterval:     s.SoundInterval,
		IsSelected:        s.IsSelected,
		CreatedAt:         s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
