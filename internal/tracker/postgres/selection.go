// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

// SelectionStore implements tracker.SelectionStore. All is_selected writes
// in this package funnel through inSelectionTx so the singleton invariant
// holds under concurrency.
type SelectionStore struct {
	db DB
}

// NewSelectionStore creates a SelectionStore.
func NewSelectionStore(db DB) *SelectionStore {
	return &SelectionStore{db: db}
}

// SetSelected makes targetID the only selected row of kind for userID in one
// transaction. The target update reporting zero rows means the row does not
// exist or belongs to someone else; both surface as tracker.ErrNotFound.
func (s *SelectionStore) SetSelected(ctx context.Context, kind tracker.Kind, userID, targetID ulid.ULID) error {
	table := kind.Table()
	if table == "" {
		return oops.Code("TRACKER_INVALID_KIND").
			With("kind", kind.String()).
			Wrap(tracker.ErrInvalidKind)
	}

	return inSelectionTx(ctx, s.db, table, userID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE `+table+` SET is_selected = TRUE, updated_at = NOW()
			WHERE id = $2 AND user_id = $1
		`, userID.String(), targetID.String())
		if err != nil {
			return oops.Code("TRACKER_SELECT_WRITE_FAILED").
				With("operation", "set selected").
				With("table", table).
				Wrap(translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return oops.Code("TRACKER_NOT_FOUND").
				With("table", table).
				Wrap(tracker.ErrNotFound)
		}
		return nil
	})
}

// inSelectionTx runs fn inside a transaction that first locks every row of
// the user's rows in table and clears the current selection. The row locks
// are the serialization point: two concurrent selection changes for the same
// user cannot interleave between clear and set, so the partial unique index
// backstop should never fire in practice.
func inSelectionTx(ctx context.Context, db DB, table string, userID ulid.ULID, fn func(pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	rows, err := tx.Query(ctx, `
		SELECT id FROM `+table+` WHERE user_id = $1 FOR UPDATE
	`, userID.String())
	if err != nil {
		return oops.Code("TRACKER_SELECT_LOCK_FAILED").
			With("operation", "lock user rows").
			With("table", table).
			Wrap(err)
	}
	// Locks are taken as rows are read; drain to lock them all.
	for rows.Next() {
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return oops.Code("TRACKER_SELECT_LOCK_FAILED").
			With("operation", "lock user rows").
			With("table", table).
			Wrap(err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE `+table+` SET is_selected = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_selected
	`, userID.String()); err != nil {
		return oops.Code("TRACKER_SELECT_CLEAR_FAILED").
			With("operation", "clear selection").
			With("table", table).
			Wrap(err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// translateError maps PostgreSQL constraint failures to domain sentinels.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.Join(tracker.ErrConflict, err)
	}
	return err
}

// Compile-time interface check.
var _ tracker.SelectionStore = (*SelectionStore)(nil)
