// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"errors"

	"github.com/happydog/core/internal/notify"
	"github.com/happydog/core/internal/platform/dberr"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/pkg/ids"
)

// ToggleLikeInput carries toggle_like's caller-supplied fields.
type ToggleLikeInput struct {
	UserID      string
	SubjectType SubjectType
	SubjectID   string
}

// ToggleLikeResult reports the post-toggle state (spec §4.6.6).
type ToggleLikeResult struct {
	Liked          bool
	SubjectAuthor  string
	SubjectSummary *string
}

func (s *Service) subjectCollection(subjectType SubjectType) string {
	if subjectType == SubjectComment {
		return docstore.CollectionComments
	}
	return docstore.CollectionPosts
}

/*
ToggleLike flips the caller's like on a Post or Comment (spec §4.6.6).
The like id is deterministic (ids.ComposeLikeID), so the toggle is a plain
existence check inside one transaction: present means delete it and
decrement the subject's like_count; absent means write it and increment.
Post-commit, a POST_LIKE or COMMENT_LIKE notification is sent to the
subject's author, unless they are the caller.
*/
func (s *Service) ToggleLike(ctx context.Context, in ToggleLikeInput) (ToggleLikeResult, error) {
	likeID := ids.ComposeLikeID(string(in.SubjectType), in.UserID, in.SubjectID)
	collection := s.subjectCollection(in.SubjectType)

	var result ToggleLikeResult
	err := s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		authorID, summary, err := s.readSubjectAuthor(ctx, tx, in.SubjectType, in.SubjectID)
		if err != nil {
			return err
		}
		result.SubjectAuthor = authorID
		result.SubjectSummary = summary

		var existing Like
		getErr := tx.Get(ctx, docstore.CollectionLikes, likeID, &existing)
		switch {
		case getErr == nil:
			if delErr := tx.Delete(ctx, docstore.CollectionLikes, likeID); delErr != nil {
				return delErr
			}
			result.Liked = false
			return tx.AtomicIncrement(ctx, collection, in.SubjectID, "like_count", -1)
		case errors.Is(getErr, dberr.ErrNotFound):
			like := Like{
				LikeID:      likeID,
				UserID:      in.UserID,
				SubjectType: in.SubjectType,
				SubjectID:   in.SubjectID,
				CreatedAt:   s.clock.Now(),
			}
			if setErr := tx.Set(ctx, docstore.CollectionLikes, likeID, like); setErr != nil {
				return setErr
			}
			result.Liked = true
			return tx.AtomicIncrement(ctx, collection, in.SubjectID, "like_count", 1)
		default:
			return getErr
		}
	})
	if err != nil {
		return ToggleLikeResult{}, err
	}

	if result.Liked && result.SubjectAuthor != in.UserID {
		nType := notify.TypePostLike
		if in.SubjectType == SubjectComment {
			nType = notify.TypeCommentLike
		}
		s.notifier.Notify(ctx, result.SubjectAuthor, in.UserID, nType, in.SubjectID, result.SubjectSummary)
	}

	return result, nil
}

func (s *Service) readSubjectAuthor(ctx context.Context, tx *docstore.Tx, subjectType SubjectType, subjectID string) (authorID string, summary *string, err error) {
	if subjectType == SubjectComment {
		var comment Comment
		if getErr := tx.Get(ctx, docstore.CollectionComments, subjectID, &comment); getErr != nil {
			return "", nil, getErr
		}
		return comment.Author.UserID, &comment.Text, nil
	}

	var post Post
	if getErr := tx.Get(ctx, docstore.CollectionPosts, subjectID, &post); getErr != nil {
		return "", nil, getErr
	}
	return post.Author.UserID, &post.Text, nil
}
