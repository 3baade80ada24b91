// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/happydog/core/internal/platform/apperr"
)

const (
	maxTransactionAttempts = 5
	retryBackoffFloor      = 20 * time.Millisecond
	retryBackoffCeiling    = 250 * time.Millisecond
)

// Tx is the handle passed to a [Store.Transaction] callback. Every
// collection operation performed through Tx participates in the same
// serializable Postgres transaction and is retried as a unit if the
// transaction aborts on a serialization conflict.
type Tx struct {
	pgTx pgx.Tx
}

// Get reads a document within the transaction's snapshot.
func (t *Tx) Get(ctx context.Context, collection, id string, out any) error {
	v, err := get[json.RawMessage](ctx, t.pgTx, collection, id)
	if err != nil {
		return err
	}
	return json.Unmarshal(v, out)
}

// Set inserts or replaces a document within the transaction.
func (t *Tx) Set(ctx context.Context, collection, id string, doc any) error {
	return set(ctx, t.pgTx, collection, id, doc)
}

// Update applies a merge-patch within the transaction.
func (t *Tx) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	return update(ctx, t.pgTx, collection, id, patch)
}

// Delete removes a document within the transaction.
func (t *Tx) Delete(ctx context.Context, collection, id string) error {
	return del(ctx, t.pgTx, collection, id)
}

// AtomicIncrement adds delta to a numeric top-level field, creating it at
// delta if absent. The post-state floors at 0, matching §4.2's contract
// for non-negative counters (Post.like_count, Post.comment_count).
func (t *Tx) AtomicIncrement(ctx context.Context, collection, id, field string, delta int) error {
	sqlQuery := fmt.Sprintf(`
		UPDATE %s
		SET body = jsonb_set(
			body, ARRAY['%s'],
			to_jsonb(GREATEST(0, COALESCE((body->>'%s')::numeric, 0) + $1)),
			true
		), version = version + 1, updated_at = now()
		WHERE id = $2`,
		tableName(collection), field, field)

	_, err := t.pgTx.Exec(ctx, sqlQuery, delta, id)
	if err != nil {
		return dbErrFromTx(err, "docstore_atomic_increment")
	}
	return nil
}

// ArrayUnion appends value to an array-valued top-level field if it is not
// already present, de-duplicating by exact JSON equality.
func (t *Tx) ArrayUnion(ctx context.Context, collection, id, field string, value any) error {
	valueBody, err := json.Marshal(value)
	if err != nil {
		return apperr.Internal(fmt.Errorf("docstore: marshal array_union value: %w", err))
	}

	sqlQuery := fmt.Sprintf(`
		UPDATE %s
		SET body = jsonb_set(
			body, ARRAY['%s'],
			CASE
				WHEN body->'%s' @> $1::jsonb THEN COALESCE(body->'%s', '[]'::jsonb)
				ELSE COALESCE(body->'%s', '[]'::jsonb) || $1::jsonb
			END,
			true
		), version = version + 1, updated_at = now()
		WHERE id = $2`,
		tableName(collection), field, field, field, field)

	_, err = t.pgTx.Exec(ctx, sqlQuery, valueBody, id)
	if err != nil {
		return dbErrFromTx(err, "docstore_array_union")
	}
	return nil
}

// ArrayRemove removes every exact-match occurrence of value from an
// array-valued top-level field.
func (t *Tx) ArrayRemove(ctx context.Context, collection, id, field string, value any) error {
	valueBody, err := json.Marshal(value)
	if err != nil {
		return apperr.Internal(fmt.Errorf("docstore: marshal array_remove value: %w", err))
	}

	sqlQuery := fmt.Sprintf(`
		UPDATE %s
		SET body = jsonb_set(
			body, ARRAY['%s'],
			COALESCE((
				SELECT jsonb_agg(elem)
				FROM jsonb_array_elements(COALESCE(body->'%s', '[]'::jsonb)) elem
				WHERE elem != $1::jsonb
			), '[]'::jsonb),
			true
		), version = version + 1, updated_at = now()
		WHERE id = $2`,
		tableName(collection), field, field)

	_, err = t.pgTx.Exec(ctx, sqlQuery, valueBody, id)
	if err != nil {
		return dbErrFromTx(err, "docstore_array_remove")
	}
	return nil
}

func dbErrFromTx(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("resource already exists")
	}
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// isRetryable reports whether err reflects a transient Postgres
// serialization conflict that a retry of the whole transaction can resolve.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure ||
		pgErr.Code == pgerrcode.DeadlockDetected
}

// Transaction runs fn inside a serializable Postgres transaction, retrying
// the entire callback up to [maxTransactionAttempts] times with jittered
// exponential backoff (20ms-250ms) when the database reports a
// serialization conflict (§4.2's optimistic-concurrency contract).
//
// fn must be idempotent with respect to any side effects performed outside
// the Tx (e.g. enqueuing external work) since it may run more than once.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	var lastErr error

	for attempt := 0; attempt < maxTransactionAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return err
			}
		}

		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(unwrapPg(err)) {
			return err
		}
	}

	return apperr.Conflict(fmt.Sprintf("transaction could not complete after %d attempts: %v", maxTransactionAttempts, lastErr))
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) (err error) {
	pgTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return apperr.Internal(fmt.Errorf("docstore: begin tx: %w", err))
	}
	defer func() {
		if err != nil {
			_ = pgTx.Rollback(ctx)
			return
		}
		err = pgTx.Commit(ctx)
	}()

	err = fn(ctx, &Tx{pgTx: pgTx})
	return err
}

func unwrapPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return err
}

func sleepBackoff(ctx context.Context, attempt int) error {
	backoff := retryBackoffFloor * time.Duration(1<<uint(attempt-1))
	if backoff > retryBackoffCeiling {
		backoff = retryBackoffCeiling
	}
	jittered := backoff/2 + time.Duration(rand.Int63n(int64(backoff/2+1)))

	timer := time.NewTimer(jittered)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
