// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package tracker

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// SelectionStore is the single writer of is_selected. Clearing the previous
// selection and setting the new one happen in one serializable step; direct
// field writes anywhere else would reintroduce the race this type exists to
// prevent.
type SelectionStore interface {
	// SetSelected makes targetID the only selected row of its kind for
	// userID. A target that does not exist or is not owned by userID fails
	// with ErrNotFound; ownership of other users' rows is never revealed.
	// Concurrent calls for the same user serialize; the last commit wins.
	SetSelected(ctx context.Context, kind Kind, userID, targetID ulid.ULID) error
}

// DailyGoalRepository persists daily goals. Every read and write is scoped
// to the owning user.
type DailyGoalRepository interface {
	// Create inserts a goal. When goal.IsSelected is set the insert and the
	// clearing of the previous selection share one transaction.
	Create(ctx context.Context, goal *DailyGoal) error
	Get(ctx context.Context, userID, id ulid.ULID) (*DailyGoal, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*DailyGoal, error)
	Update(ctx context.Context, goal *DailyGoal) error
	Delete(ctx context.Context, userID, id ulid.ULID) error
}

// StudyCategoryRepository persists study categories.
type StudyCategoryRepository interface {
	Create(ctx context.Context, category *StudyCategory) error
	Get(ctx context.Context, userID, id ulid.ULID) (*StudyCategory, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*StudyCategory, error)
	Update(ctx context.Context, category *StudyCategory) error
	Delete(ctx context.Context, userID, id ulid.ULID) error
}

// SessionCounterRepository persists session counters.
type SessionCounterRepository interface {
	Create(ctx context.Context, counter *SessionCounter) error
	Get(ctx context.Context, userID, id ulid.ULID) (*SessionCounter, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*SessionCounter, error)
	Update(ctx context.Context, counter *SessionCounter) error
	Delete(ctx context.Context, userID, id ulid.ULID) error

	// Increment atomically bumps the completed count and returns the new
	// state. Read-modify-write through Update would race with concurrent
	// timer completions.
	Increment(ctx context.Context, userID, id ulid.ULID) (*SessionCounter, error)
}

// TimeSettingsRepository persists timer configuration presets.
type TimeSettingsRepository interface {
	Create(ctx context.Context, settings *TimeSettings) error
	Get(ctx context.Context, userID, id ulid.ULID) (*TimeSettings, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*TimeSettings, error)
	Update(ctx context.Context, settings *TimeSettings) error
	Delete(ctx context.Context, userID, id ulid.ULID) error
}
