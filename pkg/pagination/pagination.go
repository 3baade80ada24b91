// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination provides standardized navigation for collection-based APIs.

HappyDog's document-store queries (§4.2) are cursor-based, never
offset-based — an `OFFSET` re-scans every skipped row on every page and
drifts under concurrent writes, while a cursor built from the last
document's sort key is stable. This package therefore centers on
[CursorParams] rather than the page-number pagination a relational
listing page would use.

Usage:

	params := pagination.CursorFromRequest(request, pagination.DefaultLimit, pagination.MaxLimit)
	...
	meta := pagination.NewCursorMeta(nextCursor)
*/
package pagination

import (
	"net/http"

	"github.com/happydog/core/pkg/convert"
)

// # Common Defaults

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10

	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// CursorParams holds the parsed cursor and limit from a request's query string.
type CursorParams struct {
	Cursor string
	Limit  int
}

// CursorMeta is the pagination metadata included in cursor-paginated list responses.
type CursorMeta struct {
	NextCursor string `json:"next_cursor,omitempty"`
}

// NewCursorMeta constructs response metadata carrying the next page's cursor.
// An empty nextCursor means the caller has reached the end of the collection.
func NewCursorMeta(nextCursor string) CursorMeta {
	return CursorMeta{NextCursor: nextCursor}
}

// CursorFromRequest parses "cursor" and "limit" query parameters, clamping
// limit to (0, maxLimit] and falling back to defaultLimit when absent or
// invalid.
func CursorFromRequest(request *http.Request, defaultLimit, maxLimit int) CursorParams {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultLimit)

	if limit < 1 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	return CursorParams{
		Cursor: request.URL.Query().Get("cursor"),
		Limit:  limit,
	}
}
