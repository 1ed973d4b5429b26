// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the movie catalog schema with golang-migrate.
//
// The migrations create the movies, favorites, comments and users tables and
// the SQL functions the containers call as RPCs (authenticate_user,
// search_movies, search_movies_count).
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp brings the schema to the newest version found under dir.
//
// A dirty schema is refused: the RPC functions may be half-created and the
// store backend would fail in confusing ways later.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+dir, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: open: %w", err)
	}
	defer func() {
		if sourceErr, databaseErr := migrator.Close(); sourceErr != nil || databaseErr != nil {
			logger.Warn("migration_close_failed", slog.Any("error", errors.Join(sourceErr, databaseErr)))
		}
	}()
	migrator.Log = slogBridge{logger: logger}

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up from %d: %w", from, err)
	}

	to, _, _ := migrator.Version()
	logger.Info("schema_migrated", slog.Uint64("from", uint64(from)), slog.Uint64("to", uint64(to)))
	return nil
}

// pgx5URL swaps a postgres:// or postgresql:// scheme for the pgx5:// scheme
// the golang-migrate driver registers. Keyword/value DSNs pass through.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogBridge implements migrate.Logger.
type slogBridge struct {
	logger *slog.Logger
}

func (bridge slogBridge) Printf(format string, args ...any) {
	bridge.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (bridge slogBridge) Verbose() bool { return false }
