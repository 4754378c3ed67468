// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package postgres implements the tracker repositories and the selection
// coordinator on PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts query execution so repositories work against *pgxpool.Pool
// in production and pgxmock in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// execFunc matches both DB.Exec and pgx.Tx.Exec, letting an insert run either
// standalone or inside a selection transaction.
type execFunc func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
