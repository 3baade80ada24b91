// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"

	"github.com/happydog/core/internal/platform/docstore"
)

const defaultFeedLimit = 10
const maxFeedLimit = 100

// PostStore persists Post documents.
type PostStore struct {
	docs *docstore.Store
}

// NewPostStore constructs a [PostStore].
func NewPostStore(docs *docstore.Store) *PostStore {
	return &PostStore{docs: docs}
}

// Get fetches a Post by id.
func (s *PostStore) Get(ctx context.Context, postID string) (Post, error) {
	return docstore.Get[Post](ctx, s.docs, docstore.CollectionPosts, postID)
}

// Feed returns a page of posts ordered by created_at descending (spec
// §4.6.2). limit is clamped to [1, maxFeedLimit], defaulting to
// defaultFeedLimit when zero.
func (s *PostStore) Feed(ctx context.Context, cursor string, limit int) (docstore.QueryResult[Post], error) {
	switch {
	case limit <= 0:
		limit = defaultFeedLimit
	case limit > maxFeedLimit:
		limit = maxFeedLimit
	}

	return docstore.Query[Post](ctx, s.docs, docstore.CollectionPosts, docstore.QueryParams{
		OrderBy: "created_at",
		Cursor:  cursor,
		Limit:   limit,
	})
}
