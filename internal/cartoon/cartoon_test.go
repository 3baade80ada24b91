// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCanTransition covers every edge spec.md §4.8's state diagram
// permits, and a representative sample of the ones it forbids
// (terminal states never have an outgoing edge; CANCELING never reverts
// to PROCESSING). CANCELING may still resolve to COMPLETED: a worker that
// already issued the generation request before observing cancellation
// runs to completion rather than discarding the published Post.
func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "processing to canceling", from: StatusProcessing, to: StatusCanceling, want: true},
		{name: "processing to completed", from: StatusProcessing, to: StatusCompleted, want: true},
		{name: "processing to failed", from: StatusProcessing, to: StatusFailed, want: true},
		{name: "canceling to failed", from: StatusCanceling, to: StatusFailed, want: true},
		{name: "canceling to completed", from: StatusCanceling, to: StatusCompleted, want: true},
		{name: "canceling cannot revert to processing", from: StatusCanceling, to: StatusProcessing, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusFailed, want: false},
		{name: "failed is terminal", from: StatusFailed, to: StatusCompleted, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, canTransition(tc.from, tc.to))
		})
	}
}

// TestBuildPrompt confirms the fixed template (spec §6.5) renders both
// the default trailer and the user's story theme correctly.
func TestBuildPrompt(t *testing.T) {
	withoutTheme := BuildPrompt("a golden retriever sitting in a park", "")
	assert.Contains(t, withoutTheme, "a golden retriever sitting in a park")
	assert.Contains(t, withoutTheme, "Create a heartwarming daily adventure story.")
	assert.NotContains(t, withoutTheme, "User's story theme:")

	withTheme := BuildPrompt("a beagle on a beach", "a pirate adventure")
	assert.Contains(t, withTheme, "User's story theme: a pirate adventure")
	assert.NotContains(t, withTheme, "Create a heartwarming daily adventure story.")
}

// TestTruncate confirms CartoonJob.error_message never exceeds the
// configured bound, and leaves short messages untouched.
func TestTruncate(t *testing.T) {
	short := "boom"
	assert.Equal(t, short, truncate(short, 200))

	long := strings.Repeat("x", 250)
	got := truncate(long, 200)
	assert.Len(t, []rune(got), 200)
}
