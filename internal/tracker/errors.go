// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package tracker

import "errors"

// Sentinel errors for tracker operations. Wrapped with oops codes at the
// point of failure; matched with errors.Is at boundaries.
var (
	// ErrNotFound indicates the entity does not exist or is not owned by
	// the requesting user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")

	// ErrInvalidKind indicates an unrecognized selectable entity kind.
	ErrInvalidKind = errors.New("invalid entity kind")

	// ErrValidation indicates entity field validation failed.
	ErrValidation = errors.New("validation failed")
)
