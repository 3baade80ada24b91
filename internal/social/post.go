// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social implements the Transactional Social Graph (spec.md §4.6):
posts, comments, likes, and the mention fan-out that rides on comment
creation. Every cross-entity mutation (create-comment-and-bump-count,
toggle-like-and-bump-count, delete-post) goes through a single
docstore.Tx, per §4.2's constraint; deleting a post does not cascade to
its comments or likes. Notification fan-out always happens
after that transaction has committed, via internal/notify.
*/
package social

import (
	"time"

	"github.com/happydog/core/internal/petcare"
	"github.com/happydog/core/internal/users"
)

// Post is the root social-graph entity (spec §3): a denormalized author
// and pet snapshot plus the media URLs a caller previously staged through
// ObjectStore and made public at creation time.
type Post struct {
	PostID       string          `json:"post_id"`
	Author       users.Snapshot  `json:"author"`
	Pet          petcare.Snapshot `json:"pet"`
	Text         string          `json:"text"`
	ImageURLs    []string        `json:"image_urls"`
	LikeCount    int             `json:"like_count"`
	CommentCount int             `json:"comment_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
