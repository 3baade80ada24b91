// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package revocation sweeps the revoked_tokens table, pruning rows once
their own expiry has passed. No code in this core checks a token against
this table or against Redis.

Token issuance, and the endpoint that would populate this table, are out
of scope for this core (spec §1) — only the scheduled cleanup sweep is, and
is harmless against a table with zero rows.
*/
package revocation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/happydog/core/internal/platform/apperr"
)

// Store wraps the revoked_tokens table's GC sweep.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a [Store] bound to an already-connected pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SweepExpired deletes every row whose expires_at has passed, returning how
// many were removed.
func (s *Store) SweepExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("revocation: sweep expired: %w", err))
	}
	return tag.RowsAffected(), nil
}
