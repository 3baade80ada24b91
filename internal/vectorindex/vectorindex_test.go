// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vectorindex_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happydog/core/internal/vectorindex"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestColdStart verifies spec.md §4.4's cold-start case: an empty index is
legal and Search against it returns no neighbors.
*/
func TestColdStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	idx, err := vectorindex.LoadOrCreate(path, 4, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 0, idx.Count())

	neighbors, err := idx.Search([]float32{0, 0, 0, 0}, 1)
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

/*
TestAddAssignsSequentialOrdinalIDs checks that ordinal_id equals the prior
count and increases strictly, per the VectorEntry invariant in spec.md §3.
*/
func TestAddAssignsSequentialOrdinalIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	idx, err := vectorindex.LoadOrCreate(path, 3, discardLogger())
	require.NoError(t, err)

	id0, err := idx.Add([]float32{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), id0)

	id1, err := idx.Add([]float32{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id1)

	assert.Equal(t, 2, idx.Count())
}

/*
TestSearchFindsNearest checks the L2 nearest-neighbor ranking against a
small known set.
*/
func TestSearchFindsNearest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	idx, err := vectorindex.LoadOrCreate(path, 2, discardLogger())
	require.NoError(t, err)

	_, err = idx.Add([]float32{0, 0})
	require.NoError(t, err)
	_, err = idx.Add([]float32{10, 10})
	require.NoError(t, err)
	_, err = idx.Add([]float32{0.1, 0.1})
	require.NoError(t, err)

	neighbors, err := idx.Search([]float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, uint32(0), neighbors[0].OrdinalID)
}

/*
TestPersistsAcrossReload confirms a flushed snapshot survives a reopen,
exercising the on-disk format described in spec.md §6.4.
*/
func TestPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")

	idx, err := vectorindex.LoadOrCreate(path, 3, discardLogger())
	require.NoError(t, err)
	_, err = idx.Add([]float32{1, 2, 3})
	require.NoError(t, err)
	_, err = idx.Add([]float32{4, 5, 6})
	require.NoError(t, err)

	reopened, err := vectorindex.LoadOrCreate(path, 3, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Count())

	neighbors, err := reopened.Search([]float32{4, 5, 6}, 1)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, uint32(1), neighbors[0].OrdinalID)
	assert.InDelta(t, 0, neighbors[0].Distance, 1e-6)
}
