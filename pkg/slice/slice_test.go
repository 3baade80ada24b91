// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/happydog/core/pkg/slice"
)

/*
TestChunk covers the partitioning boundary the social graph's like-batching
relies on (spec §4.6.7, §8): exact multiples, one-over, and one-under a
chunk boundary must all produce the right shape with no dropped elements.
*/
func TestChunk(t *testing.T) {
	tests := []struct {
		name   string
		length int
		size   int
		want   []int
	}{
		{name: "empty input", length: 0, size: 30, want: nil},
		{name: "exactly one chunk boundary", length: 30, size: 30, want: []int{30}},
		{name: "one over the boundary", length: 31, size: 30, want: []int{30, 1}},
		{name: "two full chunks", length: 60, size: 30, want: []int{30, 30}},
		{name: "fewer than one chunk", length: 5, size: 30, want: []int{5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := make([]int, tc.length)
			for i := range input {
				input[i] = i
			}

			chunks := slice.Chunk(input, tc.size)

			if tc.want == nil {
				assert.Nil(t, chunks)
				return
			}

			lengths := make([]int, len(chunks))
			for i, c := range chunks {
				lengths[i] = len(c)
			}
			assert.Equal(t, tc.want, lengths)

			var total int
			for _, c := range chunks {
				total += len(c)
			}
			assert.Equal(t, tc.length, total)
		})
	}
}

// TestMap_NilInput confirms Map preserves the nil/empty distinction instead
// of allocating a spurious empty slice.
func TestMap_NilInput(t *testing.T) {
	var input []int
	assert.Nil(t, slice.Map(input, func(v int) int { return v * 2 }))
}
