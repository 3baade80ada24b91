// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ids mints and composes the opaque string identifiers used across
every collection in the document store.

Entity primary keys are UUID v4 (not v7) — the original Python/Firestore
implementation mints identifiers with `uuid.uuid4()` throughout
(storage_service.py, notification_service.py, cartoon_jobs/services.py,
posts/services.py) and nothing about this core benefits from v7's
time-sortable ordering, since every list endpoint sorts on an explicit
`created_at` field rather than on ID lexical order.
*/
package ids

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/happydog/core/pkg/clock"
)

// New mints a fresh UUID v4 identifier.
func New() string {
	return uuid.New().String()
}

// ComposeLikeID builds the deterministic composite Like primary key so
// that toggling a like is an idempotent "does this document exist" check
// rather than a query.
func ComposeLikeID(subjectType, userID, subjectID string) string {
	return fmt.Sprintf("%s_%s_%s", subjectType, userID, subjectID)
}

// ComposeDailyLogID builds the deterministic CareRecord daily-log key,
// `{pet_id}_YYYYMMDD`, used to upsert at most one log document per pet
// per record type per day.
func ComposeDailyLogID(petID string, date clock.Date) string {
	return fmt.Sprintf("%s_%s", petID, date.String())
}
