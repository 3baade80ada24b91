// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"

	"github.com/happydog/core/internal/platform/docstore"
)

// CommentStore persists Comment documents.
type CommentStore struct {
	docs *docstore.Store
}

// NewCommentStore constructs a [CommentStore].
func NewCommentStore(docs *docstore.Store) *CommentStore {
	return &CommentStore{docs: docs}
}

// Get fetches a Comment by id.
func (s *CommentStore) Get(ctx context.Context, commentID string) (Comment, error) {
	return docstore.Get[Comment](ctx, s.docs, docstore.CollectionComments, commentID)
}

// ListByPost returns a page of comments on postID, newest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID, cursor string, limit int) (docstore.QueryResult[Comment], error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return docstore.Query[Comment](ctx, s.docs, docstore.CollectionComments, docstore.QueryParams{
		Filters: []docstore.Filter{{Field: "post_id", Op: docstore.OpEq, Value: postID}},
		OrderBy: "created_at",
		Cursor:  cursor,
		Limit:   limit,
	})
}
