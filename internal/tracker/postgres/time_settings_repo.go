// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

const timeSettingsColumns = `id, user_id, is_countdown, duration, short_break_minutes,
	long_break_minutes, long_break_interval, is_sound, sound_interval,
	is_selected, created_at, updated_at`

// TimeSettingsRepository implements tracker.TimeSettingsRepository.
type TimeSettingsRepository struct {
	db DB
}

// NewTimeSettingsRepository creates a TimeSettingsRepository.
func NewTimeSettingsRepository(db DB) *TimeSettingsRepository {
	return &TimeSettingsRepository{db: db}
}

// Create inserts a settings preset, routing pre-selected inserts through the
// selection transaction. Optional fields persist as NULL when unset.
func (r *TimeSettingsRepository) Create(ctx context.Context, settings *tracker.TimeSettings) error {
	insert := func(exec execFunc) error {
		_, err := exec(ctx, `
			INSERT INTO time_settings (id, user_id, is_countdown, duration, short_break_minutes,
				long_break_minutes, long_break_interval, is_sound, sound_interval,
				is_selected, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			settings.ID.String(), settings.UserID.String(), settings.IsCountdown,
			settings.Duration, settings.ShortBreakMinutes, settings.LongBreakMinutes,
			settings.LongBreakInterval, settings.IsSound, settings.SoundInterval,
			settings.IsSelected, settings.CreatedAt, settings.UpdatedAt,
		)
		return err
	}

	var err error
	if settings.IsSelected {
		err = inSelectionTx(ctx, r.db, "time_settings", settings.UserID, func(tx pgx.Tx) error {
			return insert(tx.Exec)
		})
	} else {
		err = insert(r.db.Exec)
	}
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").
				With("user_id", settings.UserID.String()).
				Wrap(translated)
		}
		return oops.Code("TIME_SETTINGS_CREATE_FAILED").
			With("operation", "insert time settings").
			Wrap(err)
	}
	return nil
}

// Get retrieves a settings preset scoped to its owner.
func (r *TimeSettingsRepository) Get(ctx context.Context, userID, id ulid.ULID) (*tracker.TimeSettings, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+timeSettingsColumns+`
		FROM time_settings
		WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())

	settings, err := scanTimeSettings(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TIME_SETTINGS_NOT_FOUND").
			With("time_settings_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TIME_SETTINGS_GET_FAILED").
			With("operation", "get time settings").
			Wrap(err)
	}
	return settings, nil
}

// ListByUser lists the user's settings presets, oldest first.
func (r *TimeSettingsRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*tracker.TimeSettings, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+timeSettingsColumns+`
		FROM time_settings
		WHERE user_id = $1
		ORDER BY created_at
	`, userID.String())
	if err != nil {
		return nil, oops.Code("TIME_SETTINGS_LIST_FAILED").
			With("operation", "list time settings").
			Wrap(err)
	}
	defer rows.Close()

	list := make([]*tracker.TimeSettings, 0)
	for rows.Next() {
		settings, err := scanTimeSettings(rows)
		if err != nil {
			return nil, oops.Code("TIME_SETTINGS_LIST_FAILED").
				With("operation", "scan time settings").
				Wrap(err)
		}
		list = append(list, settings)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TIME_SETTINGS_LIST_FAILED").
			With("operation", "iterate time settings").
			Wrap(err)
	}
	return list, nil
}

// Update writes a preset's mutable fields. is_selected is owned by the
// selection coordinator.
func (r *TimeSettingsRepository) Update(ctx context.Context, settings *tracker.TimeSettings) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE time_settings SET is_countdown = $3, duration = $4, short_break_minutes = $5,
			long_break_minutes = $6, long_break_interval = $7, is_sound = $8,
			sound_interval = $9, updated_at = $10
		WHERE id = $2 AND user_id = $1
	`,
		settings.UserID.String(), settings.ID.String(), settings.IsCountdown,
		settings.Duration, settings.ShortBreakMinutes, settings.LongBreakMinutes,
		settings.LongBreakInterval, settings.IsSound, settings.SoundInterval,
		settings.UpdatedAt,
	)
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").Wrap(translated)
		}
		return oops.Code("TIME_SETTINGS_UPDATE_FAILED").
			With("operation", "update time settings").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("TIME_SETTINGS_NOT_FOUND").
			With("time_settings_id", settings.ID.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

// Delete removes a preset scoped to its owner.
func (r *TimeSettingsRepository) Delete(ctx context.Context, userID, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM time_settings WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())
	if err != nil {
		return oops.Code("TIME_SETTINGS_DELETE_FAILED").
			With("operation", "delete time settings").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("TIME_SETTINGS_NOT_FOUND").
			With("time_settings_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

func scanTimeSettings(row pgx.Row) (*tracker.TimeSettings, error) {
	var (
		idStr             string
		userIDStr         string
		isCountdown       bool
		duration          *int
		shortBreakMinutes *int
		longBreakMinutes  *int
		longBreakInterval *int
		isSound           *bool
		soundInterval     *int
		isSelected        bool
		createdAt         time.Time
		updatedAt         time.Time
	)
	if err := row.Scan(&idStr, &userIDStr, &isCountdown, &duration, &shortBreakMinutes,
		&longBreakMinutes, &longBreakInterval, &isSound, &soundInterval,
		&isSelected, &createdAt, &updatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TIME_SETTINGS_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("TIME_SETTINGS_INVALID_ID").With("user_id", userIDStr).Wrap(err)
	}

	return &tracker.TimeSettings{
		ID:                id,
		UserID:            userID,
		IsCountdown:       isCountdown,
		Duration:          duration,
		ShortBreakMinutes: shortBreakMinutes,
		LongBreakMinutes:  longBreakMinutes,
		LongBreakInterval: longBreakInterval,
		IsSound:           isSound,
		SoundInterval:     soundInterval,
		IsSelected:        isSelected,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

// Compile-time interface check.
var _ tracker.TimeSettingsRepository = (*TimeSettingsRepository)(nil)
