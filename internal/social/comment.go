// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"time"

	"github.com/happydog/core/internal/users"
)

// Comment belongs to exactly one Post (spec §3). Like Post, its author is
// a denormalized snapshot captured at creation.
type Comment struct {
	CommentID string         `json:"comment_id"`
	PostID    string         `json:"post_id"`
	Author    users.Snapshot `json:"author"`
	Text      string         `json:"text"`
	LikeCount int            `json:"like_count"`
	CreatedAt time.Time      `json:"created_at"`
}
