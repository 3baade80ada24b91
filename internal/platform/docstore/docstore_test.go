// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package docstore

import (
	"encoding/json"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestTableName verifies the collection-to-table naming convention every
query in this package relies on.
*/
func TestTableName(t *testing.T) {
	assert.Equal(t, "doc_posts", tableName("posts"))
	assert.Equal(t, "doc_cartoon_jobs", tableName("cartoon_jobs"))
}

/*
TestCursorRoundTrip checks that a cursor encoded from an order value decodes
back to the same raw JSON value, independent of its underlying type.
*/
func TestCursorRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		orderValue json.RawMessage
	}{
		{"string_timestamp", json.RawMessage(`"2026-08-01T12:00:00Z"`)},
		{"numeric", json.RawMessage(`42`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := encodeCursor(tt.orderValue)
			require.NotEmpty(t, cursor)

			decoded, err := decodeCursor(cursor)
			require.NoError(t, err)
			assert.JSONEq(t, string(tt.orderValue), string(decoded))
		})
	}
}

/*
TestDecodeCursor_Invalid ensures a malformed cursor is surfaced as a
client-facing validation error rather than a decode panic.
*/
func TestDecodeCursor_Invalid(t *testing.T) {
	_, err := decodeCursor("not-a-valid-cursor!!!")
	require.Error(t, err)
}

/*
TestIsRetryable classifies the Postgres error codes the transaction retry
loop must recognize.
*/
func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"serialization_failure", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, true},
		{"deadlock_detected", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, true},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, false},
		{"not_a_pg_error", assert.AnError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryable(tt.err))
		})
	}
}
