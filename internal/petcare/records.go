// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petcare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/happydog/core/internal/platform/dberr"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/platform/validate"
	"github.com/happydog/core/pkg/clock"
	"github.com/happydog/core/pkg/ids"
)

// dailyLogID scopes spec.md §4.1's compose_daily_log_id to one document per
// pet per record type per day — the original's single all-fields-per-day
// PetCareLog collapses into per-type documents here, since CareRecord
// models one typed measurement rather than a daily bag of fields. Still
// built on ids.ComposeDailyLogID, so the "{pet_id}_YYYYMMDD" composition
// rule in spec.md §4.1 stays the literal key prefix.
func dailyLogID(petID string, recordType RecordType, date clock.Date) string {
	return fmt.Sprintf("%s_%s", ids.ComposeDailyLogID(petID, date), recordType)
}

// cumulativeRecordTypes accumulate across multiple same-day logs (each
// glass of water, each meal, each activity session adds to the day's
// total). RecordWeight is a point-in-time measurement and always
// overwrites the day's log instead.
var cumulativeRecordTypes = map[RecordType]bool{
	RecordWater:    true,
	RecordActivity: true,
	RecordMeal:     true,
}

// LogRecordInput carries log_care_record's caller-supplied fields.
type LogRecordInput struct {
	PetID      string
	RecordType RecordType
	EventTime  time.Time
	Data       float64
	Notes      *string
}

// LogCareRecord upserts the day's log for (pet_id, record_type): a fresh
// measurement for RecordWeight, an accumulated total for water/activity/meal
// (spec §3, §4.1). search_date is always derived server-side from
// event_time's UTC calendar day, never from caller input.
func (s *Service) LogCareRecord(ctx context.Context, in LogRecordInput) (CareRecord, error) {
	v := &validate.Validator{}
	v.Required("pet_id", in.PetID).
		Required("record_type", string(in.RecordType)).
		Custom("data", in.Data < 0, "Must not be negative")
	if err := v.Err(); err != nil {
		return CareRecord{}, err
	}

	if _, err := s.store.GetPet(ctx, in.PetID); err != nil {
		return CareRecord{}, err
	}

	date := clock.DateFromTime(in.EventTime)
	logID := dailyLogID(in.PetID, in.RecordType, date)

	var result CareRecord
	err := s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		var record CareRecord
		err := tx.Get(ctx, docstore.CollectionCareRecords, logID, &record)
		switch {
		case err == nil:
			patch := map[string]any{
				"event_time": in.EventTime,
				"notes":      in.Notes,
			}
			if cumulativeRecordTypes[in.RecordType] {
				if incErr := tx.AtomicIncrement(ctx, docstore.CollectionCareRecords, logID, "data", int(in.Data)); incErr != nil {
					return incErr
				}
				record.Data += in.Data
			} else {
				record.Data = in.Data
				patch["data"] = in.Data
			}
			record.EventTime = in.EventTime
			record.Notes = in.Notes
			if updErr := tx.Update(ctx, docstore.CollectionCareRecords, logID, patch); updErr != nil {
				return updErr
			}
			result = record
			return nil
		case errors.Is(err, dberr.ErrNotFound):
			record = CareRecord{
				LogID:      logID,
				PetID:      in.PetID,
				RecordType: in.RecordType,
				EventTime:  in.EventTime,
				SearchDate: date.ISO(),
				Data:       in.Data,
				Notes:      in.Notes,
			}
			if setErr := tx.Set(ctx, docstore.CollectionCareRecords, logID, record); setErr != nil {
				return setErr
			}
			result = record
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return CareRecord{}, err
	}

	return result, nil
}

// ListCareRecordsByDate returns every CareRecord logged for petID on the
// given calendar day.
func (s *Service) ListCareRecordsByDate(ctx context.Context, petID string, date clock.Date) ([]CareRecord, error) {
	return s.store.ListCareRecordsByDate(ctx, petID, date.ISO())
}
