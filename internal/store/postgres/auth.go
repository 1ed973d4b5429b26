// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/platform/dberr"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// Authenticator implements [store.Authenticator] with the authenticate_user function.
type Authenticator struct {
	pool *pgxpool.Pool
}

// NewAuthenticator creates a new PostgreSQL implementation of the Authenticator.
func NewAuthenticator(pool *pgxpool.Pool) *Authenticator {
	return &Authenticator{pool: pool}
}

// Authenticate returns the matching identities. Rejected credentials yield none.
func (authenticator *Authenticator) Authenticate(context context.Context, username, password string) ([]store.Identity, error) {
	query := fmt.Sprintf(`SELECT id::text, name FROM %s($1, $2)`, schema.RPCAuthenticateUser)

	rows, err := authenticator.pool.Query(context, query, username, password)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_authenticate_failed")
	}
	defer rows.Close()

	identities := []store.Identity{}
	for rows.Next() {
		var identity store.Identity
		if err := rows.Scan(&identity.ID, &identity.Name); err != nil {
			return nil, dberr.Wrap(err, "postgres_authenticate_scan_failed")
		}
		identities = append(identities, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_authenticate_failed")
	}
	return identities, nil
}
