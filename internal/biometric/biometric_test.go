// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package biometric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/happydog/core/internal/platform/constants"
)

/*
TestClassifyDistance covers spec.md §4.7's classification table at its
boundaries: the duplicate threshold is inclusive on the low side, the
outlier threshold is inclusive on the high side, and the open interval
between them commits.
*/
func TestClassifyDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     Status
	}{
		{name: "well within duplicate range", distance: 0.1, want: StatusDuplicate},
		{name: "exactly at duplicate threshold", distance: constants.DuplicateThreshold, want: StatusDuplicate},
		{name: "just past duplicate threshold", distance: constants.DuplicateThreshold + 0.01, want: StatusSuccess},
		{name: "middle of the accept band", distance: 0.9, want: StatusSuccess},
		{name: "just below outlier threshold", distance: constants.OutlierThreshold - 0.01, want: StatusSuccess},
		{name: "exactly at outlier threshold", distance: constants.OutlierThreshold, want: StatusInvalidImage},
		{name: "well past outlier threshold", distance: 5.0, want: StatusInvalidImage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyDistance(tc.distance))
		})
	}
}

// TestFakeDetector_Miss confirms the read phase's "continue with the full
// image" fallback: a miss leaves the candidate image untouched upstream.
func TestFakeDetector_Miss(t *testing.T) {
	d := fakeDetector{hit: false}
	crop, ok := d.Detect(context.Background(), []byte{1, 2, 3})
	assert.False(t, ok)
	assert.Nil(t, crop)
}

// TestFakeEmbedder_Deterministic confirms the same source bytes always
// embed to the same vector, the property [Service.decide]'s duplicate
// classification depends on.
func TestFakeEmbedder_Deterministic(t *testing.T) {
	e := fakeEmbedder{dimension: 8}
	a, err := e.Embed(context.Background(), []byte{1, 2, 3})
	assert.NoError(t, err)
	b, err := e.Embed(context.Background(), []byte{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := e.Embed(context.Background(), []byte{9, 9, 9})
	assert.NoError(t, err)
	assert.NotEqual(t, a, c)
}
