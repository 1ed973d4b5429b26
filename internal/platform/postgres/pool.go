// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx pool behind the direct-database store backend.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
)

// A catalog page issues at most three queries at once (rows, count, comment
// counts) per browser session, so a modest pool covers one instance.
const (
	maxConns        = 16
	minConns        = 1
	maxConnIdleTime = 5 * time.Minute
	connectTimeout  = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

// NewPool parses dsn, applies the pool limits and verifies connectivity.
//
// Every connection runs with statement_timeout equal to the request timeout,
// so a slow full-text search cannot outlive the HTTP request that started it.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = constants.AppName
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		statementTimeout := fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds())
		_, err := connection.Exec(ctx, statementTimeout)
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "postgres_connected",
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)
	return pool, nil
}

// Ping backs the store readiness check.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}
