// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package docstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/happydog/core/internal/platform/apperr"
)

// Op is a comparison operator usable in a [Filter].
type Op string

const (
	OpEq Op = "="
	OpLt Op = "<"
	OpLte Op = "<="
	OpGt Op = ">"
	OpGte Op = ">="
)

// Filter constrains a query to documents whose JSONB field matches value
// under op. Field addresses a top-level document key.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// QueryParams describes a single cursor-paginated collection scan.
//
// Results are ordered by OrderBy descending (newest first), matching every
// feed/listing operation in spec.md §4.6 and §4.9. Cursor, when non-empty,
// is the opaque value returned as [QueryResult.NextCursor] from a prior
// call; it resumes strictly after the last document the caller saw.
type QueryParams struct {
	Filters []Filter
	OrderBy string
	Cursor  string
	Limit   int
}

// QueryResult is the page of documents plus the cursor to fetch the next one.
type QueryResult[T any] struct {
	Items      []T
	NextCursor string
}

// cursorToken is the opaque, base64-encoded payload behind a query cursor.
// It carries the OrderBy field's value at the last row of the previous
// page, so the next page can resume with a simple keyset predicate instead
// of an OFFSET (which degrades under concurrent inserts/deletes, per §4.2).
type cursorToken struct {
	OrderValue json.RawMessage `json:"o"`
}

func encodeCursor(orderValue json.RawMessage) string {
	raw, _ := json.Marshal(cursorToken{OrderValue: orderValue})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(cursor string) (json.RawMessage, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, apperr.ValidationError("invalid cursor")
	}
	var tok cursorToken
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, apperr.ValidationError("invalid cursor")
	}
	return tok.OrderValue, nil
}

// Query scans a collection with optional equality/range filters, returning
// a cursor-paginated page ordered by p.OrderBy descending.
func Query[T any](ctx context.Context, s *Store, collection string, p QueryParams) (QueryResult[T], error) {
	return query[T](ctx, s.pool, collection, p)
}

// Count returns the number of documents in collection matching filters,
// without materializing any of them. Used by consistency self-checks that
// only need a cardinality, not the rows themselves.
func Count(ctx context.Context, s *Store, collection string, filters []Filter) (int64, error) {
	var (
		conds []string
		args  []any
	)

	argIdx := 1
	for _, f := range filters {
		conds = append(conds, fmt.Sprintf("body->>'%s' %s $%d", f.Field, f.Op, argIdx))
		args = append(args, fmt.Sprintf("%v", f.Value))
		argIdx++
	}

	whereClause := ""
	if len(conds) > 0 {
		whereClause = "WHERE " + strings.Join(conds, " AND ")
	}

	sqlQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, tableName(collection), whereClause)

	var count int64
	if err := s.pool.QueryRow(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, apperr.Internal(fmt.Errorf("docstore: count %s: %w", collection, err))
	}
	return count, nil
}

func query[T any](ctx context.Context, q querier, collection string, p QueryParams) (QueryResult[T], error) {
	var zero QueryResult[T]

	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}

	var (
		conds []string
		args  []any
	)

	argIdx := 1
	for _, f := range p.Filters {
		conds = append(conds, fmt.Sprintf("body->>'%s' %s $%d", f.Field, f.Op, argIdx))
		args = append(args, fmt.Sprintf("%v", f.Value))
		argIdx++
	}

	if p.Cursor != "" {
		orderValue, err := decodeCursor(p.Cursor)
		if err != nil {
			return zero, err
		}
		var raw any
		if err := json.Unmarshal(orderValue, &raw); err != nil {
			return zero, apperr.ValidationError("invalid cursor")
		}
		conds = append(conds, fmt.Sprintf("body->>'%s' < $%d", p.OrderBy, argIdx))
		args = append(args, fmt.Sprintf("%v", raw))
		argIdx++
	}

	whereClause := ""
	if len(conds) > 0 {
		whereClause = "WHERE " + strings.Join(conds, " AND ")
	}

	sqlQuery := fmt.Sprintf(
		`SELECT body FROM %s %s ORDER BY body->>'%s' DESC LIMIT $%d`,
		tableName(collection), whereClause, p.OrderBy, argIdx,
	)
	args = append(args, limit+1)

	rows, err := q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return zero, apperr.Internal(fmt.Errorf("docstore: query %s: %w", collection, err))
	}
	defer rows.Close()

	var items []T
	var lastOrderValue json.RawMessage
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return zero, apperr.Internal(fmt.Errorf("docstore: scan %s: %w", collection, err))
		}
		if len(items) == limit {
			// this is the lookahead row proving a next page exists
			var doc map[string]json.RawMessage
			if err := json.Unmarshal(body, &doc); err == nil {
				lastOrderValue = doc[p.OrderBy]
			}
			break
		}
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return zero, apperr.Internal(fmt.Errorf("docstore: unmarshal %s: %w", collection, err))
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return zero, apperr.Internal(fmt.Errorf("docstore: rows %s: %w", collection, err))
	}

	result := QueryResult[T]{Items: items}
	if lastOrderValue != nil {
		var lastDoc map[string]json.RawMessage
		body, _ := json.Marshal(items[len(items)-1])
		_ = json.Unmarshal(body, &lastDoc)
		result.NextCursor = encodeCursor(lastDoc[p.OrderBy])
	}
	return result, nil
}
