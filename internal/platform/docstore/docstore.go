// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package docstore provides a typed, document-oriented wrapper over PostgreSQL.

The external systems this core's three subsystems are specified against (a
Firestore-like document database, per spec.md §4.2) offer per-document
strongly consistent reads, multi-document optimistic-concurrency
transactions, atomic field increments, array union/remove, and cursor-based
range queries. Rather than bolt a second storage engine onto the stack, this
package reproduces that exact contract on top of the teacher's own
`pgx/v5` pool, storing every collection as a JSONB document keyed by a
text primary key — the same "typed interface over pgx" shape
`store_postgres.go` uses for relational tables, generalized one level.

Architecture:

  - Collection: one Postgres table `doc_<collection>` per document kind.
  - Store: holds the shared `*pgxpool.Pool`; `Get`/`Set`/`Update`/`Delete`/
    `Query` are free functions parameterized by the document type, since Go
    methods cannot carry their own type parameters.
  - Tx: a transaction handle threaded through `Transaction`'s callback,
    exposing the same primitives plus `AtomicIncrement`/`ArrayUnion`/
    `ArrayRemove`.
*/
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/dberr"
)

// ErrNoMatch is returned by a collection's Query-based lookup helpers
// (FindByX) when no document satisfies the filter.
var ErrNoMatch = apperr.NotFound("Resource")

// Store is the shared handle every collection-specific repository wraps.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a [Store] bound to an already-connected pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// record is the physical row shape backing every `doc_<collection>` table.
type record struct {
	ID        string
	Body      []byte
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func tableName(collection string) string {
	return "doc_" + collection
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting Get/Set/
// etc. be reused unchanged inside and outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgx.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Get fetches one document by id and unmarshals it into T.
func Get[T any](ctx context.Context, s *Store, collection, id string) (T, error) {
	return get[T](ctx, s.pool, collection, id)
}

func get[T any](ctx context.Context, q querier, collection, id string) (T, error) {
	var zero T
	var body []byte

	query := fmt.Sprintf(`SELECT body FROM %s WHERE id = $1`, tableName(collection))
	err := q.QueryRow(ctx, query, id).Scan(&body)
	if err != nil {
		return zero, dberr.Wrap(err, "docstore_get")
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, apperr.Internal(fmt.Errorf("docstore: corrupt document %s/%s: %w", collection, id, err))
	}
	return out, nil
}

// GetMany fetches every existing document among ids in one round trip,
// returning a map keyed by id. Missing ids are simply absent from the
// result rather than erroring, since callers use this for existence
// checks (spec §4.6.7's like-batching) where a miss is an expected outcome.
func GetMany[T any](ctx context.Context, s *Store, collection string, ids []string) (map[string]T, error) {
	return getMany[T](ctx, s.pool, collection, ids)
}

func getMany[T any](ctx context.Context, q querier, collection string, ids []string) (map[string]T, error) {
	result := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT id, body FROM %s WHERE id = ANY($1)`, tableName(collection))
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("docstore: get_many %s: %w", collection, err))
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, apperr.Internal(fmt.Errorf("docstore: scan %s: %w", collection, err))
		}
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, apperr.Internal(fmt.Errorf("docstore: corrupt document %s/%s: %w", collection, id, err))
		}
		result[id] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("docstore: rows %s: %w", collection, err))
	}
	return result, nil
}

// Set inserts or fully replaces a document.
func Set[T any](ctx context.Context, s *Store, collection, id string, doc T) error {
	return set(ctx, s.pool, collection, id, doc)
}

func set[T any](ctx context.Context, q querier, collection, id string, doc T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return apperr.Internal(fmt.Errorf("docstore: marshal %s: %w", collection, err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, body, version, created_at, updated_at)
		VALUES ($1, $2, 1, now(), now())
		ON CONFLICT (id) DO UPDATE SET body = $2, version = %s.version + 1, updated_at = now()`,
		tableName(collection), tableName(collection))

	_, err = q.Exec(ctx, query, id, body)
	if err != nil {
		return dberr.Wrap(err, "docstore_set")
	}
	return nil
}

// Delete removes a document by id. Deleting a missing id is not an error.
func Delete(ctx context.Context, s *Store, collection, id string) error {
	return del(ctx, s.pool, collection, id)
}

func del(ctx context.Context, q querier, collection, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableName(collection))
	_, err := q.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "docstore_delete")
	}
	return nil
}

// Update applies a merge-patch: the patch document's top-level keys
// overwrite the stored document's keys, leaving the rest untouched.
func Update(ctx context.Context, s *Store, collection, id string, patch map[string]any) error {
	return update(ctx, s.pool, collection, id, patch)
}

func update(ctx context.Context, q querier, collection, id string, patch map[string]any) error {
	patchBody, err := json.Marshal(patch)
	if err != nil {
		return apperr.Internal(fmt.Errorf("docstore: marshal patch %s: %w", collection, err))
	}

	query := fmt.Sprintf(`
		UPDATE %s SET body = body || $2::jsonb, version = version + 1, updated_at = now()
		WHERE id = $1`,
		tableName(collection))

	tag, err := q.Exec(ctx, query, id, patchBody)
	if err != nil {
		return dberr.Wrap(err, "docstore_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Document")
	}
	return nil
}
