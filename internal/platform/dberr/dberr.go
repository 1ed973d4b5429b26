// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
)

// SQLSTATE codes the store distinguishes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Wrap classifies a database error into an [apperr.AppError].
//
// The action names the failed operation (e.g. "movies_delete") and is kept
// in the cause for logs only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Resource")
	}

	cause := fmt.Errorf("%s: %w", action, err)

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case uniqueViolation:
			conflict := apperr.Conflict("Record already exists")
			conflict.Cause = cause
			return conflict
		case foreignKeyViolation, checkViolation:
			invalid := apperr.Unprocessable(pgError.Message)
			invalid.Cause = cause
			return invalid
		}
	}

	return apperr.Remote(err.Error(), cause)
}
