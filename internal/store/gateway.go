// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store is the storage gateway for the catalog. It runs
// parameterized read queries against PostgreSQL and returns rows as
// column-name maps, leaving all shaping to the caller.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultQueryTimeout bounds a single query when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// StorageError reports a failed read: connectivity loss, timeout,
// cancellation or a malformed query. An empty result is never a
// StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Timeout reports whether the read was cut off by its deadline.
func (e *StorageError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Gateway executes read queries on a shared connection pool. Each call
// acquires one connection and releases it before returning.
type Gateway struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewGateway returns a Gateway over pool. A zero timeout falls back to
// DefaultQueryTimeout.
func NewGateway(pool *pgxpool.Pool, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Gateway{pool: pool, timeout: timeout}
}

// Query runs sql with bound args and collects every row. Zero matching
// rows yields an empty, non-nil slice.
func (g *Gateway) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	rows, err := g.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, &StorageError{Op: "collect rows", Err: err}
	}

	out := make([]Row, len(maps))
	for i, m := range maps {
		out[i] = Row(m)
	}

	slog.Debug("query executed", "rows", len(out), "duration", time.Since(start).String())
	return out, nil
}

// Ping verifies that a pooled connection can reach the database.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.pool.Ping(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}
