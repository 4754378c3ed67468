// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepworktimer/deepworktimer/internal/tracker"
	"github.com/deepworktimer/deepworktimer/pkg/errutil"
)

var dailyGoalTestColumns = []string{
	"id", "user_id", "quantity", "block_size", "is_selected", "created_at", "updated_at",
}

func testDailyGoal(t *testing.T) *tracker.DailyGoal {
	t.Helper()
	goal, err := tracker.NewDailyGoal(ulid.Make(), 8, 25)
	require.NoError(t, err)
	return goal
}

func dailyGoalRow(goal *tracker.DailyGoal) *pgxmock.Rows {
	return pgxmock.NewRows(dailyGoalTestColumns).AddRow(
		goal.ID.String(), goal.UserID.String(), goal.Quantity, goal.BlockSize,
		goal.IsSelected, goal.CreatedAt, goal.UpdatedAt,
	)
}

func uniqueViolation() *pgconn.PgError {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
}

func TestDailyGoalRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts an unselected goal without a transaction", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		mock.ExpectExec(`INSERT INTO daily_goals`).
			WithArgs(goal.ID.String(), goal.UserID.String(), goal.Quantity, goal.BlockSize,
				false, goal.CreatedAt, goal.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewDailyGoalRepository(mock)
		err := repo.Create(ctx, goal)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts a pre-selected goal inside the selection transaction", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		goal.IsSelected = true

		expectSelectionPreamble(mock, "daily_goals", goal.UserID, ulid.Make().String())
		mock.ExpectExec(`INSERT INTO daily_goals`).
			WithArgs(goal.ID.String(), goal.UserID.String(), goal.Quantity, goal.BlockSize,
				true, goal.CreatedAt, goal.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := NewDailyGoalRepository(mock)
		err := repo.Create(ctx, goal)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates a unique violation to a conflict", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		mock.ExpectExec(`INSERT INTO daily_goals`).
			WithArgs(goal.ID.String(), goal.UserID.String(), goal.Quantity, goal.BlockSize,
				false, goal.CreatedAt, goal.UpdatedAt).
			WillReturnError(uniqueViolation())

		repo := NewDailyGoalRepository(mock)
		err := repo.Create(ctx, goal)

		require.ErrorIs(t, err, tracker.ErrConflict)
		errutil.AssertErrorCode(t, err, "CONFLICT")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back a pre-selected insert on failure", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		goal.IsSelected = true

		expectSelectionPreamble(mock, "daily_goals", goal.UserID)
		mock.ExpectExec(`INSERT INTO daily_goals`).
			WithArgs(goal.ID.String(), goal.UserID.String(), goal.Quantity, goal.BlockSize,
				true, goal.CreatedAt, goal.UpdatedAt).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		repo := NewDailyGoalRepository(mock)
		err := repo.Create(ctx, goal)

		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "GOAL_CREATE_FAILED")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyGoalRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the goal when owned by the user", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		mock.ExpectQuery(`SELECT .+ FROM daily_goals\s+WHERE id = \$2 AND user_id = \$1`).
			WithArgs(goal.UserID.String(), goal.ID.String()).
			WillReturnRows(dailyGoalRow(goal))

		repo := NewDailyGoalRepository(mock)
		got, err := repo.Get(ctx, goal.UserID, goal.ID)

		require.NoError(t, err)
		assert.Equal(t, goal.ID, got.ID)
		assert.Equal(t, goal.Quantity, got.Quantity)
		assert.Equal(t, goal.BlockSize, got.BlockSize)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for a missing or foreign goal", func(t *testing.T) {
		mock := newMockPool(t)
		userID, goalID := ulid.Make(), ulid.Make()
		mock.ExpectQuery(`SELECT .+ FROM daily_goals`).
			WithArgs(userID.String(), goalID.String()).
			WillReturnRows(pgxmock.NewRows(dailyGoalTestColumns))

		repo := NewDailyGoalRepository(mock)
		_, err := repo.Get(ctx, userID, goalID)

		require.ErrorIs(t, err, tracker.ErrNotFound)
		errutil.AssertErrorCode(t, err, "GOAL_NOT_FOUND")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyGoalRepository_ListByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all goals for the user", func(t *testing.T) {
		mock := newMockPool(t)
		first := testDailyGoal(t)
		second := testDailyGoal(t)
		second.UserID = first.UserID
		rows := pgxmock.NewRows(dailyGoalTestColumns).
			AddRow(first.ID.String(), first.UserID.String(), first.Quantity, first.BlockSize,
				first.IsSelected, first.CreatedAt, first.UpdatedAt).
			AddRow(second.ID.String(), second.UserID.String(), second.Quantity, second.BlockSize,
				second.IsSelected, second.CreatedAt, second.UpdatedAt)
		mock.ExpectQuery(`SELECT .+ FROM daily_goals\s+WHERE user_id = \$1\s+ORDER BY created_at`).
			WithArgs(first.UserID.String()).
			WillReturnRows(rows)

		repo := NewDailyGoalRepository(mock)
		goals, err := repo.ListByUser(ctx, first.UserID)

		require.NoError(t, err)
		require.Len(t, goals, 2)
		assert.Equal(t, first.ID, goals[0].ID)
		assert.Equal(t, second.ID, goals[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns an empty slice for a user with no goals", func(t *testing.T) {
		mock := newMockPool(t)
		userID := ulid.Make()
		mock.ExpectQuery(`SELECT .+ FROM daily_goals`).
			WithArgs(userID.String()).
			WillReturnRows(pgxmock.NewRows(dailyGoalTestColumns))

		repo := NewDailyGoalRepository(mock)
		goals, err := repo.ListByUser(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, goals)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyGoalRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("writes quantity and block size", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		goal.Quantity = 12
		goal.UpdatedAt = time.Now().UTC()
		mock.ExpectExec(`UPDATE daily_goals SET quantity = \$3, block_size = \$4, updated_at = \$5\s+WHERE id = \$2 AND user_id = \$1`).
			WithArgs(goal.UserID.String(), goal.ID.String(), goal.Quantity, goal.BlockSize, goal.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewDailyGoalRepository(mock)
		err := repo.Update(ctx, goal)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		mock := newMockPool(t)
		goal := testDailyGoal(t)
		mock.ExpectExec(`UPDATE daily_goals SET quantity`).
			WithArgs(goal.UserID.String(), goal.ID.String(), goal.Quantity, goal.BlockSize, goal.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewDailyGoalRepository(mock)
		err := repo.Update(ctx, goal)

		require.ErrorIs(t, err, tracker.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyGoalRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the goal", func(t *testing.T) {
		mock := newMockPool(t)
		userID, goalID := ulid.Make(), ulid.Make()
		mock.ExpectExec(`DELETE FROM daily_goals WHERE id = \$2 AND user_id = \$1`).
			WithArgs(userID.String(), goalID.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewDailyGoalRepository(mock)
		err := repo.Delete(ctx, userID, goalID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		mock := newMockPool(t)
		userID, goalID := ulid.Make(), ulid.Make()
		mock.ExpectExec(`DELETE FROM daily_goals`).
			WithArgs(userID.String(), goalID.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewDailyGoalRepository(mock)
		err := repo.Delete(ctx, userID, goalID)

		require.ErrorIs(t, err, tracker.ErrNotFound)
		errutil.AssertErrorCode(t, err, "GOAL_NOT_FOUND")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
