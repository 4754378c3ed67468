// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package tracker

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DailyGoal is a target of focused-work blocks for a day: quantity blocks of
// block_size minutes each. A user keeps a palette of goals and selects one.
type DailyGoal struct {
	ID         ulid.ULID
	UserID     ulid.ULID
	Quantity   int
	BlockSize  int // minutes per block
	IsSelected bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDailyGoal creates a goal owned by userID.
func NewDailyGoal(userID ulid.ULID, quantity, blockSize int) (*DailyGoal, error) {
	if quantity <= 0 {
		return nil, oops.Code("TRACKER_VALIDATION").
			With("field", "quantity").
			Wrap(ErrValidation)
	}
	if blockSize <= 0 {
		return nil, oops.Code("TRACKER_VALIDATION").
			With("field", "block_size").
			Wrap(ErrValidation)
	}
	now := time.Now()
	return &DailyGoal{
		ID:        ulid.Make(),
		UserID:    userID,
		Quantity:  quantity,
		BlockSize: blockSize,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// StudyCategory labels what a work block was spent on.
type StudyCategory struct {
	ID         ulid.ULID
	UserID     ulid.ULID
	Title      string
	IsSelected bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MaxCategoryTitleLength bounds category titles.
const MaxCategoryTitleLength = 100

// NewStudyCategory creates a category owned by userID.
func NewStudyCategory(userID ulid.ULID, title string) (*StudyCategory, error) {
	if title == "" {
		return nil, oops.Code("TRACKER_VALIDATION").
			With("field", "title").
			Wrap(ErrValidation)
	}
	if len(title) > MaxCategoryTitleLength {
		return nil, oops.Code("TRACKER_VALIDATION").
			With("field", "title").
			With("max", MaxCategoryTitleLength).
			Wrap(ErrValidation)
	}
	now := time.Now()
	return &StudyCategory{
		ID:        ulid.Make(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SessionCounter tracks completed focus sessions against a target.
type SessionCounter struct {
	ID         ulid.ULID
	UserID     ulid.ULID
	Target     int
	Completed  int
	IsSelected bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSessionCounter creates a counter owned by userID, starting at zero
// completed sessions.
func NewSessionCounter(userID ulid.ULID, target int) (*SessionCounter, error) {
	if target <= 0 {
		return nil, oops.Code("TRACKER_VALIDATION").
			With("field", "target").
			Wrap(ErrValidation)
	}
	now := time.Now()
	return &SessionCounter{
		ID:        ulid.Make(),
		UserID:    userID,
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TimeSettings is a timer configuration preset. Nil fields mean the client
// default applies.
type TimeSettings struct {
	ID                ulid.ULID
	UserID            ulid.ULID
	IsCountdown       bool
	Duration          *int // minutes
	ShortBreakMinutes *int
	LongBreakMinutes  *int
	LongBreakInterval *int // sessions between long breaks
	IsSound           *bool
	SoundInterval     *int
	IsSelected        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTimeSettings creates a countdown preset owned by userID. Optional fields
// are applied by the caller before Create.
func NewTimeSettings(userID ulid.ULID, isCountdown bool) *TimeSettings {
	now := time.Now()
	return &TimeSettings{
		ID:          ulid.Make(),
		UserID:      userID,
		IsCountdown: isCountdown,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
