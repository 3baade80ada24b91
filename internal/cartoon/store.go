// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"context"
	"fmt"
	"time"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/docstore"
)

// Store persists CartoonJob documents.
type Store struct {
	docs *docstore.Store
}

// NewStore constructs a [Store] bound to a shared docstore handle.
func NewStore(docs *docstore.Store) *Store {
	return &Store{docs: docs}
}

// Create writes a freshly submitted job, always in PROCESSING.
func (s *Store) Create(ctx context.Context, job CartoonJob) error {
	return docstore.Set(ctx, s.docs, docstore.CollectionCartoonJobs, job.JobID, job)
}

// Get fetches a CartoonJob by id.
func (s *Store) Get(ctx context.Context, jobID string) (CartoonJob, error) {
	return docstore.Get[CartoonJob](ctx, s.docs, docstore.CollectionCartoonJobs, jobID)
}

/*
Transition moves jobID to `to`, merging patch into the document, iff the
FSM (job.go) permits an edge from the job's current state. An illegal
edge — including any attempt to leave a terminal state — fails with
apperr.InvalidState and writes nothing, so a job's status trajectory is
always a monotonic walk along the diagram in spec §4.8.
*/
func (s *Store) Transition(ctx context.Context, jobID string, to Status, patch map[string]any, now time.Time) error {
	return s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		var job CartoonJob
		if err := tx.Get(ctx, docstore.CollectionCartoonJobs, jobID, &job); err != nil {
			return err
		}
		if !canTransition(job.Status, to) {
			return apperr.InvalidState(fmt.Sprintf("cartoon job cannot move from %s to %s", job.Status, to))
		}

		merged := map[string]any{"status": to, "updated_at": now}
		for k, v := range patch {
			merged[k] = v
		}
		return tx.Update(ctx, docstore.CollectionCartoonJobs, jobID, merged)
	})
}
