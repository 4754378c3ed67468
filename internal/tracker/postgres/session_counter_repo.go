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

const sessionCounterColumns = `id, user_id, target, completed, is_selected, created_at, updated_at`

// SessionCounterRepository implements tracker.SessionCounterRepository.
type SessionCounterRepository struct {
	db DB
}

// NewSessionCounterRepository creates a SessionCounterRepository.
func NewSessionCounterRepository(db DB) *SessionCounterRepository {
	return &SessionCounterRepository{db: db}
}

// Create inserts a counter, routing pre-selected inserts through the
// selection transaction.
func (r *SessionCounterRepository) Create(ctx context.Context, counter *tracker.SessionCounter) error {
	insert := func(exec execFunc) error {
		_, err := exec(ctx, `
			INSERT INTO session_counters (id, user_id, target, completed, is_selected, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			counter.ID.String(), counter.UserID.String(), counter.Target, counter.Completed,
			counter.IsSelected, counter.CreatedAt, counter.UpdatedAt,
		)
		return err
	}

	var err error
	if counter.IsSelected {
		err = inSelectionTx(ctx, r.db, "session_counters", counter.UserID, func(tx pgx.Tx) error {
			return insert(tx.Exec)
		})
	} else {
		err = insert(r.db.Exec)
	}
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").
				With("user_id", counter.UserID.String()).
				Wrap(translated)
		}
		return oops.Code("COUNTER_CREATE_FAILED").
			With("operation", "insert counter").
			Wrap(err)
	}
	return nil
}

// Get retrieves a counter scoped to its owner.
func (r *SessionCounterRepository) Get(ctx context.Context, userID, id ulid.ULID) (*tracker.SessionCounter, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+sessionCounterColumns+`
		FROM session_counters
		WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())

	counter, err := scanSessionCounter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COUNTER_NOT_FOUND").
			With("counter_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("COUNTER_GET_FAILED").
			With("operation", "get counter").
			Wrap(err)
	}
	return counter, nil
}

// ListByUser lists the user's counters, oldest first.
func (r *SessionCounterRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*tracker.SessionCounter, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+sessionCounterColumns+`
		FROM session_counters
		WHERE user_id = $1
		ORDER BY created_at
	`, userID.String())
	if err != nil {
		return nil, oops.Code("COUNTER_LIST_FAILED").
			With("operation", "list counters").
			Wrap(err)
	}
	defer rows.Close()

	counters := make([]*tracker.SessionCounter, 0)
	for rows.Next() {
		counter, err := scanSessionCounter(rows)
		if err != nil {
			return nil, oops.Code("COUNTER_LIST_FAILED").
				With("operation", "scan counter").
				Wrap(err)
		}
		counters = append(counters, counter)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("COUNTER_LIST_FAILED").
			With("operation", "iterate counters").
			Wrap(err)
	}
	return counters, nil
}

// Update writes a counter's target and completed count. is_selected is owned
// by the selection coordinator.
func (r *SessionCounterRepository) Update(ctx context.Context, counter *tracker.SessionCounter) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE session_counters SET target = $3, completed = $4, updated_at = $5
		WHERE id = $2 AND user_id = $1
	`, counter.UserID.String(), counter.ID.String(), counter.Target, counter.Completed, counter.UpdatedAt)
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").Wrap(translated)
		}
		return oops.Code("COUNTER_UPDATE_FAILED").
			With("operation", "update counter").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("COUNTER_NOT_FOUND").
			With("counter_id", counter.ID.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

// Increment bumps completed by one atomically and returns the updated row.
// The increment happens in the database so concurrent completions never lose
// a count.
func (r *SessionCounterRepository) Increment(ctx context.Context, userID, id ulid.ULID) (*tracker.SessionCounter, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE session_counters SET completed = completed + 1, updated_at = NOW()
		WHERE id = $2 AND user_id = $1
		RETURNING `+sessionCounterColumns+`
	`, userID.String(), id.String())

	counter, err := scanSessionCounter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COUNTER_NOT_FOUND").
			With("counter_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("COUNTER_INCREMENT_FAILED").
			With("operation", "increment counter").
			Wrap(err)
	}
	return counter, nil
}

// Delete removes a counter scoped to its owner.
func (r *SessionCounterRepository) Delete(ctx context.Context, userID, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM session_counters WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())
	if err != nil {
		return oops.Code("COUNTER_DELETE_FAILED").
			With("operation", "delete counter").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("COUNTER_NOT_FOUND").
			With("counter_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

func scanSessionCounter(row pgx.Row) (*tracker.SessionCounter, error) {
	var (
		idStr      string
		userIDStr  string
		target     int
		completed  int
		isSelected bool
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&idStr, &userIDStr, &target, &completed, &isSelected, &createdAt, &updatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("COUNTER_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("COUNTER_INVALID_ID").With("user_id", userIDStr).Wrap(err)
	}

	return &tracker.SessionCounter{
		ID:         id,
		UserID:     userID,
		Target:     target,
		Completed:  completed,
		IsSelected: isSelected,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Compile-time interface check.
var _ tracker.SessionCounterRepository = (*SessionCounterRepository)(nil)
