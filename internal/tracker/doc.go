// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package tracker holds the productivity entities a user configures their
// timer with: daily goals, study categories, session counters, and time
// settings presets.
//
// All four entity types are selectable: a user keeps any number of rows of
// a type but at most one is selected at a time. The SelectionStore is the
// only writer of that marker; see its documentation for the concurrency
// contract. Persistence drivers live in the postgres subpackage.
package tracker
