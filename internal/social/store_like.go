// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"

	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/pkg/ids"
	"github.com/happydog/core/pkg/slice"
)

// likeBatchSize mirrors the document store's IN-clause limit named in
// spec.md §4.6.7. Postgres itself has no such ceiling, but the batching
// contract is observable behavior (§8's "batching at exactly 30, 31, 60"
// scenario), so it is honored at the application layer regardless of the
// underlying engine.
const likeBatchSize = 30

// LikeStore persists Like documents and answers the read-side batched
// existence checks the feed and comment list use to set is_liked.
type LikeStore struct {
	docs *docstore.Store
}

// NewLikeStore constructs a [LikeStore].
func NewLikeStore(docs *docstore.Store) *LikeStore {
	return &LikeStore{docs: docs}
}

// Get fetches a Like by its deterministic composite id.
func (s *LikeStore) Get(ctx context.Context, likeID string) (Like, error) {
	return docstore.Get[Like](ctx, s.docs, docstore.CollectionLikes, likeID)
}

// BatchLiked reports, for a single viewer, which of subjectIDs they have
// liked. Candidate Like ids are built deterministically and fetched in
// chunks of at most likeBatchSize (spec §4.6.7), avoiding N+1 reads on
// feed rendering.
func (s *LikeStore) BatchLiked(ctx context.Context, viewerID string, subjectType SubjectType, subjectIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(subjectIDs))
	if viewerID == "" {
		return liked, nil
	}

	idToSubject := make(map[string]string, len(subjectIDs))
	candidateIDs := make([]string, 0, len(subjectIDs))
	for _, subjectID := range subjectIDs {
		likeID := ids.ComposeLikeID(string(subjectType), viewerID, subjectID)
		idToSubject[likeID] = subjectID
		candidateIDs = append(candidateIDs, likeID)
	}

	for _, chunk := range slice.Chunk(candidateIDs, likeBatchSize) {
		found, err := docstore.GetMany[Like](ctx, s.docs, docstore.CollectionLikes, chunk)
		if err != nil {
			return nil, err
		}
		for likeID := range found {
			liked[idToSubject[likeID]] = true
		}
	}

	return liked, nil
}
