// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package vectorindex implements a durable, content-addressed flat L2
similarity index over fixed-dimension float32 embeddings (spec.md §4.4).

It is single-writer, many-reader: Add serializes under an exclusive lock
for the duration of appending the vector and flushing it to disk; Search
runs lock-free against the most recently published immutable snapshot
(copy-on-write, the same "mutex-guarded state, not channels" shape the
platform's rate limiter uses for its client map). A failed flush rolls the
in-memory side back to the count it had before the failed Add, so the
in-memory state and the on-disk snapshot never disagree after a successful
return from Add.
*/
package vectorindex

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/golang/snappy"
	"github.com/minio/sha256-simd"
	"go.uber.org/atomic"

	"github.com/happydog/core/internal/platform/apperr"
)

const (
	magicHeader  = "NPRINTIX"
	headerSize   = 8 + 4 + 4 // magic + dimension + count
	checksumSize = sha256.Size
)

// Neighbor is one result row from Search.
type Neighbor struct {
	OrdinalID uint32
	Distance  float64
}

// snapshot is the immutable, published view readers search against.
type snapshot struct {
	dimension int
	vectors   [][]float32 // index == ordinal_id
}

// Index is a single VectorIndex bound to one on-disk file.
type Index struct {
	path      string
	dimension int

	writeMu sync.Mutex // serializes Add + flush
	current atomic.Pointer[snapshot]

	logger *slog.Logger
}

// LoadOrCreate opens path if it exists and is well-formed, or initializes a
// fresh empty index at dimension otherwise. A truncated trailing record is
// logged and discarded (spec §6.4's corruption-recovery rule); the file is
// not rewritten until the next successful Add.
func LoadOrCreate(path string, dimension int, logger *slog.Logger) (*Index, error) {
	idx := &Index{path: path, dimension: dimension, logger: logger}

	snap, err := loadSnapshot(path, dimension, logger)
	if err != nil {
		return nil, err
	}
	idx.current.Store(snap)
	return idx, nil
}

// Count returns the number of vectors currently committed.
func (idx *Index) Count() int {
	return len(idx.current.Load().vectors)
}

// Search returns the k nearest neighbors to v by L2 distance, against a
// consistent snapshot. An empty index returns no neighbors.
func (idx *Index) Search(v []float32, k int) ([]Neighbor, error) {
	snap := idx.current.Load()
	if len(v) != snap.dimension {
		return nil, apperr.Internal(fmt.Errorf("vectorindex: query dimension %d != index dimension %d", len(v), snap.dimension))
	}
	if len(snap.vectors) == 0 {
		return nil, nil
	}

	neighbors := make([]Neighbor, len(snap.vectors))
	for i, candidate := range snap.vectors {
		neighbors[i] = Neighbor{OrdinalID: uint32(i), Distance: l2Distance(v, candidate)}
	}

	sortByDistance(neighbors)
	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// Add appends v, flushes it durably, and returns its ordinal_id (equal to
// the prior Count()). On flush failure the in-memory count is rolled back
// and the error is returned; by then the caller (the Biometric Admission
// Engine) has already committed a Pet document referencing the new
// ordinal_id, since commit precedes Add in that flow, and cmd/reconcile
// replays such entries.
func (idx *Index) Add(v []float32) (uint32, error) {
	if len(v) != idx.dimension {
		return 0, apperr.Internal(fmt.Errorf("vectorindex: vector dimension %d != index dimension %d", len(v), idx.dimension))
	}

	idx.writeMu.Lock()
	defer idx.writeMu.Unlock()

	prior := idx.current.Load()
	ordinalID := uint32(len(prior.vectors))

	grown := make([][]float32, len(prior.vectors)+1)
	copy(grown, prior.vectors)
	grown[ordinalID] = v
	next := &snapshot{dimension: idx.dimension, vectors: grown}

	if err := flushSnapshot(idx.path, next); err != nil {
		// Roll back: the in-memory side never advanced past prior, since
		// `next` was never published.
		return 0, apperr.Internal(fmt.Errorf("vectorindex: flush failed: %w", err))
	}

	idx.current.Store(next)
	return ordinalID, nil
}

func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func sortByDistance(neighbors []Neighbor) {
	for i := 1; i < len(neighbors); i++ {
		j := i
		for j > 0 && neighbors[j-1].Distance > neighbors[j].Distance {
			neighbors[j-1], neighbors[j] = neighbors[j], neighbors[j-1]
			j--
		}
	}
}

// loadSnapshot reads an existing snapshot file, or returns an empty one if
// the file does not exist yet (spec §4.4's legal cold-start case).
func loadSnapshot(path string, dimension int, logger *slog.Logger) (*snapshot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &snapshot{dimension: dimension, vectors: nil}, nil
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("vectorindex: open %s: %w", path, err))
	}
	defer f.Close()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return &snapshot{dimension: dimension, vectors: nil}, nil
		}
		return nil, apperr.Internal(fmt.Errorf("vectorindex: read header: %w", err))
	}
	if string(header[:8]) != magicHeader {
		return nil, apperr.Internal(fmt.Errorf("vectorindex: bad magic in %s", path))
	}

	fileDimension := int(binary.LittleEndian.Uint32(header[8:12]))
	declaredCount := int(binary.LittleEndian.Uint32(header[12:16]))
	if fileDimension != dimension {
		return nil, apperr.Internal(fmt.Errorf("vectorindex: file dimension %d != configured dimension %d", fileDimension, dimension))
	}

	compressed, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("vectorindex: read body: %w", err))
	}

	var body []byte
	if len(compressed) > checksumSize {
		payload := compressed[:len(compressed)-checksumSize]
		trailer := compressed[len(compressed)-checksumSize:]

		sum := sha256.Sum256(payload)
		if !bytesEqual(sum[:], trailer) {
			logger.Warn("vectorindex_checksum_mismatch", slog.String("path", path))
		}

		body, err = snappy.Decode(nil, payload)
		if err != nil {
			logger.Warn("vectorindex_decode_failed", slog.String("path", path), slog.Any("error", err))
			return &snapshot{dimension: dimension, vectors: nil}, nil
		}
	}

	recordSize := 4 + dimension*4
	wholeRecords := len(body) / recordSize
	if wholeRecords < declaredCount {
		logger.Warn("vectorindex_truncated_snapshot",
			slog.String("path", path),
			slog.Int("declared_count", declaredCount),
			slog.Int("recovered_count", wholeRecords))
	}

	vectors := make([][]float32, wholeRecords)
	for i := 0; i < wholeRecords; i++ {
		off := i * recordSize
		rec := body[off : off+recordSize]
		vec := make([]float32, dimension)
		for d := 0; d < dimension; d++ {
			bits := binary.LittleEndian.Uint32(rec[4+d*4 : 8+d*4])
			vec[d] = math.Float32frombits(bits)
		}
		vectors[i] = vec
	}

	return &snapshot{dimension: dimension, vectors: vectors}, nil
}

// flushSnapshot serializes every vector in snap and atomically rewrites
// the snapshot file (write-to-temp, fsync, rename). Rewriting the whole
// file rather than appending in place keeps the snappy block and checksum
// trailer consistent without maintaining a separate index of block
// boundaries; this index carries at most a few thousand records (one per
// verified Pet), so a full rewrite per Add is cheap.
func flushSnapshot(path string, snap *snapshot) error {
	body := make([]byte, 0, len(snap.vectors)*(4+snap.dimension*4))
	recordBuf := make([]byte, 4+snap.dimension*4)
	for ordinalID, v := range snap.vectors {
		binary.LittleEndian.PutUint32(recordBuf[0:4], uint32(ordinalID))
		for d, f := range v {
			binary.LittleEndian.PutUint32(recordBuf[4+d*4:8+d*4], math.Float32bits(f))
		}
		body = append(body, recordBuf...)
	}

	compressed := snappy.Encode(nil, body)
	checksum := sha256.Sum256(compressed)

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	w := bufio.NewWriter(f)
	header := make([]byte, headerSize)
	copy(header[:8], magicHeader)
	binary.LittleEndian.PutUint32(header[8:12], uint32(snap.dimension))
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(snap.vectors)))

	if _, err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		f.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if _, err := w.Write(checksum[:]); err != nil {
		f.Close()
		return fmt.Errorf("write checksum: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	return os.Rename(tmpPath, path)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
