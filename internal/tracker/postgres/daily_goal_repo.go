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

const dailyGoalColumns = `id, user_id, quantity, block_size, is_selected, created_at, updated_at`

// DailyGoalRepository implements tracker.DailyGoalRepository.
type DailyGoalRepository struct {
	db DB
}

// NewDailyGoalRepository creates a DailyGoalRepository.
func NewDailyGoalRepository(db DB) *DailyGoalRepository {
	return &DailyGoalRepository{db: db}
}

// Create inserts a goal. A pre-selected goal is inserted inside the
// selection transaction so the previous selection clears atomically with it.
func (r *DailyGoalRepository) Create(ctx context.Context, goal *tracker.DailyGoal) error {
	insert := func(exec execFunc) error {
		_, err := exec(ctx, `
			INSERT INTO daily_goals (id, user_id, quantity, block_size, is_selected, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			goal.ID.String(), goal.UserID.String(), goal.Quantity, goal.BlockSize,
			goal.IsSelected, goal.CreatedAt, goal.UpdatedAt,
		)
		return err
	}

	var err error
	if goal.IsSelected {
		err = inSelectionTx(ctx, r.db, "daily_goals", goal.UserID, func(tx pgx.Tx) error {
			return insert(tx.Exec)
		})
	} else {
		err = insert(r.db.Exec)
	}
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").
				With("user_id", goal.UserID.String()).
				Wrap(translated)
		}
		return oops.Code("GOAL_CREATE_FAILED").
			With("operation", "insert goal").
			Wrap(err)
	}
	return nil
}

// Get retrieves a goal scoped to its owner. A goal owned by another user is
// indistinguishable from a missing one.
func (r *DailyGoalRepository) Get(ctx context.Context, userID, id ulid.ULID) (*tracker.DailyGoal, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+dailyGoalColumns+`
		FROM daily_goals
		WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())

	goal, err := scanDailyGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("GOAL_NOT_FOUND").
			With("goal_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("GOAL_GET_FAILED").
			With("operation", "get goal").
			Wrap(err)
	}
	return goal, nil
}

// ListByUser lists the user's goals, oldest first.
func (r *DailyGoalRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*tracker.DailyGoal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+dailyGoalColumns+`
		FROM daily_goals
		WHERE user_id = $1
		ORDER BY created_at
	`, userID.String())
	if err != nil {
		return nil, oops.Code("GOAL_LIST_FAILED").
			With("operation", "list goals").
			Wrap(err)
	}
	defer rows.Close()

	goals := make([]*tracker.DailyGoal, 0)
	for rows.Next() {
		goal, err := scanDailyGoal(rows)
		if err != nil {
			return nil, oops.Code("GOAL_LIST_FAILED").
				With("operation", "scan goal").
				Wrap(err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("GOAL_LIST_FAILED").
			With("operation", "iterate goals").
			Wrap(err)
	}
	return goals, nil
}

// Update writes a goal's mutable fields. is_selected is owned by the
// selection coordinator and never written here.
func (r *DailyGoalRepository) Update(ctx context.Context, goal *tracker.DailyGoal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE daily_goals SET quantity = $3, block_size = $4, updated_at = $5
		WHERE id = $2 AND user_id = $1
	`, goal.UserID.String(), goal.ID.String(), goal.Quantity, goal.BlockSize, goal.UpdatedAt)
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").Wrap(translated)
		}
		return oops.Code("GOAL_UPDATE_FAILED").
			With("operation", "update goal").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("GOAL_NOT_FOUND").
			With("goal_id", goal.ID.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

// Delete removes a goal scoped to its owner.
func (r *DailyGoalRepository) Delete(ctx context.Context, userID, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM daily_goals WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())
	if err != nil {
		return oops.Code("GOAL_DELETE_FAILED").
			With("operation", "delete goal").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("GOAL_NOT_FOUND").
			With("goal_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

func scanDailyGoal(row pgx.Row) (*tracker.DailyGoal, error) {
	var (
		idStr      string
		userIDStr  string
		quantity   int
		blockSize  int
		isSelected bool
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&idStr, &userIDStr, &quantity, &blockSize, &isSelected, &createdAt, &updatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("GOAL_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("GOAL_INVALID_ID").With("user_id", userIDStr).Wrap(err)
	}

	return &tracker.DailyGoal{
		ID:         id,
		UserID:     userID,
		Quantity:   quantity,
		BlockSize:  blockSize,
		IsSelected: isSelected,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Compile-time interface check.
var _ tracker.DailyGoalRepository = (*DailyGoalRepository)(nil)
