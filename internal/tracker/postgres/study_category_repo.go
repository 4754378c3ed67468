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

const studyCategoryColumns = `id, user_id, title, is_selected, created_at, updated_at`

// StudyCategoryRepository implements tracker.StudyCategoryRepository.
type StudyCategoryRepository struct {
	db DB
}

// NewStudyCategoryRepository creates a StudyCategoryRepository.
func NewStudyCategoryRepository(db DB) *StudyCategoryRepository {
	return &StudyCategoryRepository{db: db}
}

// Create inserts a category, routing pre-selected inserts through the
// selection transaction.
func (r *StudyCategoryRepository) Create(ctx context.Context, category *tracker.StudyCategory) error {
	insert := func(exec execFunc) error {
		_, err := exec(ctx, `
			INSERT INTO study_categories (id, user_id, title, is_selected, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			category.ID.String(), category.UserID.String(), category.Title,
			category.IsSelected, category.CreatedAt, category.UpdatedAt,
		)
		return err
	}

	var err error
	if category.IsSelected {
		err = inSelectionTx(ctx, r.db, "study_categories", category.UserID, func(tx pgx.Tx) error {
			return insert(tx.Exec)
		})
	} else {
		err = insert(r.db.Exec)
	}
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").
				With("user_id", category.UserID.String()).
				Wrap(translated)
		}
		return oops.Code("CATEGORY_CREATE_FAILED").
			With("operation", "insert category").
			Wrap(err)
	}
	return nil
}

// Get retrieves a category scoped to its owner.
func (r *StudyCategoryRepository) Get(ctx context.Context, userID, id ulid.ULID) (*tracker.StudyCategory, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+studyCategoryColumns+`
		FROM study_categories
		WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())

	category, err := scanStudyCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CATEGORY_NOT_FOUND").
			With("category_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CATEGORY_GET_FAILED").
			With("operation", "get category").
			Wrap(err)
	}
	return category, nil
}

// ListByUser lists the user's categories, oldest first.
func (r *StudyCategoryRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*tracker.StudyCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+studyCategoryColumns+`
		FROM study_categories
		WHERE user_id = $1
		ORDER BY created_at
	`, userID.String())
	if err != nil {
		return nil, oops.Code("CATEGORY_LIST_FAILED").
			With("operation", "list categories").
			Wrap(err)
	}
	defer rows.Close()

	categories := make([]*tracker.StudyCategory, 0)
	for rows.Next() {
		category, err := scanStudyCategory(rows)
		if err != nil {
			return nil, oops.Code("CATEGORY_LIST_FAILED").
				With("operation", "scan category").
				Wrap(err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CATEGORY_LIST_FAILED").
			With("operation", "iterate categories").
			Wrap(err)
	}
	return categories, nil
}

// Update writes a category's title. is_selected is owned by the selection
// coordinator.
func (r *StudyCategoryRepository) Update(ctx context.Context, category *tracker.StudyCategory) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE study_categories SET title = $3, updated_at = $4
		WHERE id = $2 AND user_id = $1
	`, category.UserID.String(), category.ID.String(), category.Title, category.UpdatedAt)
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, tracker.ErrConflict) {
			return oops.Code("CONFLICT").Wrap(translated)
		}
		return oops.Code("CATEGORY_UPDATE_FAILED").
			With("operation", "update category").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("CATEGORY_NOT_FOUND").
			With("category_id", category.ID.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

// Delete removes a category scoped to its owner.
func (r *StudyCategoryRepository) Delete(ctx context.Context, userID, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM study_categories WHERE id = $2 AND user_id = $1
	`, userID.String(), id.String())
	if err != nil {
		return oops.Code("CATEGORY_DELETE_FAILED").
			With("operation", "delete category").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("CATEGORY_NOT_FOUND").
			With("category_id", id.String()).
			Wrap(tracker.ErrNotFound)
	}
	return nil
}

func scanStudyCategory(row pgx.Row) (*tracker.StudyCategory, error) {
	var (
		idStr      string
		userIDStr  string
		title      string
		isSelected bool
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&idStr, &userIDStr, &title, &isSelected, &createdAt, &updatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CATEGORY_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("CATEGORY_INVALID_ID").With("user_id", userIDStr).Wrap(err)
	}

	return &tracker.StudyCategory{
		ID:         id,
		UserID:     userID,
		Title:      title,
		IsSelected: isSelected,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Compile-time interface check.
var _ tracker.StudyCategoryRepository = (*StudyCategoryRepository)(nil)
