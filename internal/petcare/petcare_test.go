// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petcare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happydog/core/pkg/clock"
)

/*
TestLookupBreed covers the two-tier breed validation spec.md §4.9 requires:
an unknown breed name is a hard failure (known=false), while a known breed
missing gender-specific weight data yields a nil ideal weight so the
caller falls back to initial_weight_kg.
*/
func TestLookupBreed(t *testing.T) {
	tests := []struct {
		name       string
		breed      string
		gender     Gender
		wantKnown  bool
		wantWeight *float64
	}{
		{name: "known breed with male weight", breed: "Golden Retriever", gender: GenderMale, wantKnown: true, wantWeight: kg(32)},
		{name: "known breed with female weight", breed: "Poodle", gender: GenderFemale, wantKnown: true, wantWeight: kg(6.5)},
		{name: "known breed missing weight data falls back", breed: "Mixed Breed", gender: GenderMale, wantKnown: true, wantWeight: nil},
		{name: "unknown breed name fails outright", breed: "Dire Wolf", gender: GenderMale, wantKnown: false, wantWeight: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			weight, known := lookupBreed(tc.breed, tc.gender)
			assert.Equal(t, tc.wantKnown, known)
			if tc.wantWeight == nil {
				assert.Nil(t, weight)
			} else {
				require.NotNil(t, weight)
				assert.Equal(t, *tc.wantWeight, *weight)
			}
		})
	}
}

// TestParseBirthdate confirms the YYYY-MM-DD contract and that malformed
// input surfaces as an error rather than a zero-value silent success.
func TestParseBirthdate(t *testing.T) {
	got, err := parseBirthdate("2023-05-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC), got)

	_, err = parseBirthdate("05/17/2023")
	assert.Error(t, err)
}

// TestDailyLogID confirms the composite key is stable for repeated calls
// on the same (pet, type, day) — the upsert idempotency LogCareRecord
// depends on.
func TestDailyLogID(t *testing.T) {
	date := clock.Date{Year: 2026, Month: time.March, Day: 4}

	first := dailyLogID("pet-1", RecordWater, date)
	second := dailyLogID("pet-1", RecordWater, date)
	assert.Equal(t, first, second)
	assert.Equal(t, "pet-1_20260304_water", first)

	other := dailyLogID("pet-1", RecordMeal, date)
	assert.NotEqual(t, first, other)
}

// TestCumulativeRecordTypes documents which record types accumulate across
// same-day logs versus overwrite (weight).
func TestCumulativeRecordTypes(t *testing.T) {
	assert.True(t, cumulativeRecordTypes[RecordWater])
	assert.True(t, cumulativeRecordTypes[RecordActivity])
	assert.True(t, cumulativeRecordTypes[RecordMeal])
	assert.False(t, cumulativeRecordTypes[RecordWeight])
}

// TestWaterBowlFormula locks in spec.md §4.9's capacity/increment formula
// independent of RegisterPet's transactional plumbing.
func TestWaterBowlFormula(t *testing.T) {
	tests := []struct {
		name            string
		initialWeightKg float64
		wantCapacityMl  int
		wantIncrementMl int
	}{
		{name: "typical weight", initialWeightKg: 10, wantCapacityMl: 600, wantIncrementMl: 120},
		{name: "very light pet floors increment at 1", initialWeightKg: 0.03, wantCapacityMl: 2, wantIncrementMl: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			capacityMl, incrementMl := waterBowlFormula(tc.initialWeightKg)
			assert.Equal(t, tc.wantCapacityMl, capacityMl)
			assert.Equal(t, tc.wantIncrementMl, incrementMl)
		})
	}
}
