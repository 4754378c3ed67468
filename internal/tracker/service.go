// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service coordinates tracker entity CRUD and selection. All operations are
// scoped to an authenticated user id supplied by the caller.
type Service struct {
	goals      DailyGoalRepository
	categories StudyCategoryRepository
	counters   SessionCounterRepository
	settings   TimeSettingsRepository
	selection  SelectionStore
	logger     *slog.Logger
}

// NewService creates a tracker Service.
func NewService(
	goals DailyGoalRepository,
	categories StudyCategoryRepository,
	counters SessionCounterRepository,
	settings TimeSettingsRepository,
	selection SelectionStore,
) (*Service, error) {
	return NewServiceWithLogger(goals, categories, counters, settings, selection, slog.Default())
}

// NewServiceWithLogger creates a tracker Service with an explicit logger.
func NewServiceWithLogger(
	goals DailyGoalRepository,
	categories StudyCategoryRepository,
	counters SessionCounterRepository,
	settings TimeSettingsRepository,
	selection SelectionStore,
	logger *slog.Logger,
) (*Service, error) {
	if goals == nil {
		return nil, oops.Errorf("daily goal repository is required")
	}
	if categories == nil {
		return nil, oops.Errorf("study category repository is required")
	}
	if counters == nil {
		return nil, oops.Errorf("session counter repository is required")
	}
	if settings == nil {
		return nil, oops.Errorf("time settings repository is required")
	}
	if selection == nil {
		return nil, oops.Errorf("selection store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		goals:      goals,
		categories: categories,
		counters:   counters,
		settings:   settings,
		selection:  selection,
		logger:     logger,
	}, nil
}

// Select makes targetID the only selected row of kind for userID.
func (s *Service) Select(ctx context.Context, kind Kind, userID, targetID ulid.ULID) error {
	if err := s.selection.SetSelected(ctx, kind, userID, targetID); err != nil {
		return oops.Code("TRACKER_SELECT_FAILED").
			With("operation", "set selected").
			With("kind", kind.String()).
			With("user_id", userID.String()).
			Wrap(err)
	}
	return nil
}

// --- Daily goals ---

// DailyGoalPatch carries optional goal field updates.
type DailyGoalPatch struct {
	Quantity  *int
	BlockSize *int
}

// CreateDailyGoal creates a goal, optionally pre-selected.
func (s *Service) CreateDailyGoal(ctx context.Context, userID ulid.ULID, quantity, blockSize int, selected bool) (*DailyGoal, error) {
	goal, err := NewDailyGoal(userID, quantity, blockSize)
	if err != nil {
		return nil, err
	}
	goal.IsSelected = selected

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, oops.Code("TRACKER_GOAL_CREATE_FAILED").
			With("operation", "insert goal").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return goal, nil
}

// GetDailyGoal retrieves one of the user's goals.
func (s *Service) GetDailyGoal(ctx context.Context, userID, id ulid.ULID) (*DailyGoal, error) {
	return s.goals.Get(ctx, userID, id)
}

// ListDailyGoals lists the user's goals.
func (s *Service) ListDailyGoals(ctx context.Context, userID ulid.ULID) ([]*DailyGoal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// UpdateDailyGoal applies a partial goal edit.
func (s *Service) UpdateDailyGoal(ctx context.Context, userID, id ulid.ULID, patch DailyGoalPatch) (*DailyGoal, error) {
	goal, err := s.goals.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return nil, oops.Code("TRACKER_VALIDATION").With("field", "quantity").Wrap(ErrValidation)
		}
		goal.Quantity = *patch.Quantity
	}
	if patch.BlockSize != nil {
		if *patch.BlockSize <= 0 {
			return nil, oops.Code("TRACKER_VALIDATION").With("field", "block_size").Wrap(ErrValidation)
		}
		goal.BlockSize = *patch.BlockSize
	}
	goal.UpdatedAt = time.Now()

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, oops.Code("TRACKER_GOAL_UPDATE_FAILED").
			With("operation", "update goal").
			With("goal_id", id.String()).
			Wrap(err)
	}
	return goal, nil
}

// DeleteDailyGoal removes one of the user's goals.
func (s *Service) DeleteDailyGoal(ctx context.Context, userID, id ulid.ULID) error {
	return s.goals.Delete(ctx, userID, id)
}

// --- Study categories ---

// CreateStudyCategory creates a category, optionally pre-selected.
func (s *Service) CreateStudyCategory(ctx context.Context, userID ulid.ULID, title string, selected bool) (*StudyCategory, error) {
	category, err := NewStudyCategory(userID, title)
	if err != nil {
		return nil, err
	}
	category.IsSelected = selected

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, oops.Code("TRACKER_CATEGORY_CREATE_FAILED").
			With("operation", "insert category").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return category, nil
}

// GetStudyCategory retrieves one of the user's categories.
func (s *Service) GetStudyCategory(ctx context.Context, userID, id ulid.ULID) (*StudyCategory, error) {
	return s.categories.Get(ctx, userID, id)
}

// ListStudyCategories lists the user's categories.
func (s *Service) ListStudyCategories(ctx context.Context, userID ulid.ULID) ([]*StudyCategory, error) {
	return s.categories.ListByUser(ctx, userID)
}

// RenameStudyCategory updates a category title.
func (s *Service) RenameStudyCategory(ctx context.Context, userID, id ulid.ULID, title string) (*StudyCategory, error) {
	if title == "" || len(title) > MaxCategoryTitleLength {
		return nil, oops.Code("TRACKER_VALIDATION").With("field", "title").Wrap(ErrValidation)
	}

	category, err := s.categories.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	category.Title = title
	category.UpdatedAt = time.Now()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, oops.Code("TRACKER_CATEGORY_UPDATE_FAILED").
			With("operation", "update category").
			With("category_id", id.String()).
			Wrap(err)
	}
	return category, nil
}

// DeleteStudyCategory removes one of the user's categories.
func (s *Service) DeleteStudyCategory(ctx context.Context, userID, id ulid.ULID) error {
	return s.categories.Delete(ctx, userID, id)
}

// --- Session counters ---

// CreateSessionCounter creates a counter, optionally pre-selected.
func (s *Service) CreateSessionCounter(ctx context.Context, userID ulid.ULID, target int, selected bool) (*SessionCounter, error) {
	counter, err := NewSessionCounter(userID, target)
	if err != nil {
		return nil, err
	}
	counter.IsSelected = selected

	if err := s.counters.Create(ctx, counter); err != nil {
		return nil, oops.Code("TRACKER_COUNTER_CREATE_FAILED").
			With("operation", "insert counter").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return counter, nil
}

// GetSessionCounter retrieves one of the user's counters.
func (s *Service) GetSessionCounter(ctx context.Context, userID, id ulid.ULID) (*SessionCounter, error) {
	return s.counters.Get(ctx, userID, id)
}

// ListSessionCounters lists the user's counters.
func (s *Service) ListSessionCounters(ctx context.Context, userID ulid.ULID) ([]*SessionCounter, error) {
	return s.counters.ListByUser(ctx, userID)
}

// IncrementSessionCounter records a completed focus session.
func (s *Service) IncrementSessionCounter(ctx context.Context, userID, id ulid.ULID) (*SessionCounter, error) {
	counter, err := s.counters.Increment(ctx, userID, id)
	if err != nil {
		return nil, oops.Code("TRACKER_COUNTER_INCREMENT_FAILED").
			With("operation", "increment counter").
			With("counter_id", id.String()).
			Wrap(err)
	}
	return counter, nil
}

// ResetSessionCounter zeroes the completed count.
func (s *Service) ResetSessionCounter(ctx context.Context, userID, id ulid.ULID) (*SessionCounter, error) {
	counter, err := s.counters.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	counter.Completed = 0
	counter.UpdatedAt = time.Now()

	if err := s.counters.Update(ctx, counter); err != nil {
		return nil, oops.Code("TRACKER_COUNTER_UPDATE_FAILED").
			With("operation", "update counter").
			With("counter_id", id.String()).
			Wrap(err)
	}
	return counter, nil
}

// DeleteSessionCounter removes one of the user's counters.
func (s *Service) DeleteSessionCounter(ctx context.Context, userID, id ulid.ULID) error {
	return s.counters.Delete(ctx, userID, id)
}

// --- Time settings ---

// TimeSettingsPatch carries optional preset field updates.
type TimeSettingsPatch struct {
	IsCountdown       *bool
	Duration          *int
	ShortBreakMinutes *int
	LongBreakMinutes  *int
	LongBreakInterval *int
	IsSound           *bool
	SoundInterval     *int
}

// CreateTimeSettings creates a timer preset, optionally pre-selected.
func (s *Service) CreateTimeSettings(ctx context.Context, userID ulid.ULID, patch TimeSettingsPatch, selected bool) (*TimeSettings, error) {
	isCountdown := true
	if patch.IsCountdown != nil {
		isCountdown = *patch.IsCountdown
	}
	settings := NewTimeSettings(userID, isCountdown)
	applyTimeSettingsPatch(settings, patch)
	settings.IsSelected = selected

	if err := s.settings.Create(ctx, settings); err != nil {
		return nil, oops.Code("TRACKER_SETTINGS_CREATE_FAILED").
			With("operation", "insert time settings").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return settings, nil
}

// GetTimeSettings retrieves one of the user's presets.
func (s *Service) GetTimeSettings(ctx context.Context, userID, id ulid.ULID) (*TimeSettings, error) {
	return s.settings.Get(ctx, userID, id)
}

// ListTimeSettings lists the user's presets.
func (s *Service) ListTimeSettings(ctx context.Context, userID ulid.ULID) ([]*TimeSettings, error) {
	return s.settings.ListByUser(ctx, userID)
}

// UpdateTimeSettings applies a partial preset edit.
func (s *Service) UpdateTimeSettings(ctx context.Context, userID, id ulid.ULID, patch TimeSettingsPatch) (*TimeSettings, error) {
	settings, err := s.settings.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.IsCountdown != nil {
		settings.IsCountdown = *patch.IsCountdown
	}
	applyTimeSettingsPatch(settings, patch)
	settings.UpdatedAt = time.Now()

	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, oops.Code("TRACKER_SETTINGS_UPDATE_FAILED").
			With("operation", "update time settings").
			With("settings_id", id.String()).
			Wrap(err)
	}
	return settings, nil
}

// DeleteTimeSettings removes one of the user's presets.
func (s *Service) DeleteTimeSettings(ctx context.Context, userID, id ulid.ULID) error {
	return s.settings.Delete(ctx, userID, id)
}

func applyTimeSettingsPatch(settings *TimeSettings, patch TimeSettingsPatch) {
	if patch.Duration != nil {
		settings.Duration = patch.Duration
	}
	if patch.ShortBreakMinutes != nil {
		settings.ShortBreakMinutes = patch.ShortBreakMinutes
	}
	if patch.LongBreakMinutes != nil {
		settings.LongBreakMinutes = patch.LongBreakMinutes
	}
	if patch.LongBreakInterval != nil {
		settings.LongBreakInterval = patch.LongBreakInterval
	}
	if patch.IsSound != nil {
		settings.IsSound = patch.IsSound
	}
	if patch.SoundInterval != nil {
		settings.SoundInterval = patch.SoundInterval
	}
}
