// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import "time"

// SubjectType enumerates what a Like targets.
type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

// Like records one user's like of a Post or Comment. Its id is the
// deterministic composite ids.ComposeLikeID(subject_type, user_id,
// subject_id) so toggling is an idempotent existence check rather than a
// query (spec §4.6.6).
type Like struct {
	LikeID      string      `json:"like_id"`
	UserID      string      `json:"user_id"`
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   string      `json:"subject_id"`
	CreatedAt   time.Time   `json:"created_at"`
}
