// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"

	"github.com/happydog/core/internal/notify"
	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/platform/validate"
	"github.com/happydog/core/pkg/ids"
)

const (
	minCommentTextLen = 1
	maxCommentTextLen = 1000
)

// CreateCommentInput carries create_comment's caller-supplied fields.
type CreateCommentInput struct {
	UserID string
	PostID string
	Text   string
}

/*
CreateComment writes a Comment under PostID and bumps the post's counter
in the same transaction (spec §4.6.4). After commit it emits a COMMENT
notification to the post's author (unless they are the commenter) and a
MENTION notification to every `@nickname` token it can resolve. Neither
fan-out failure rolls back the comment.
*/
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (Comment, error) {
	v := &validate.Validator{}
	v.MinLen("text", in.Text, minCommentTextLen).MaxLen("text", in.Text, maxCommentTextLen)
	if err := v.Err(); err != nil {
		return Comment{}, err
	}

	author, err := s.users.Get(ctx, in.UserID)
	if err != nil {
		return Comment{}, err
	}

	var post Post
	comment := Comment{
		CommentID: ids.New(),
		PostID:    in.PostID,
		Author:    author.ToSnapshot(),
		Text:      in.Text,
		LikeCount: 0,
		CreatedAt: s.clock.Now(),
	}

	err = s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if getErr := tx.Get(ctx, docstore.CollectionPosts, in.PostID, &post); getErr != nil {
			return getErr
		}
		if setErr := tx.Set(ctx, docstore.CollectionComments, comment.CommentID, comment); setErr != nil {
			return setErr
		}
		return tx.AtomicIncrement(ctx, docstore.CollectionPosts, in.PostID, "comment_count", 1)
	})
	if err != nil {
		return Comment{}, err
	}

	if post.Author.UserID != in.UserID {
		s.notifier.Notify(ctx, post.Author.UserID, in.UserID, notify.TypeComment, comment.CommentID, &comment.Text)
	}
	s.notifyMentions(ctx, in.UserID, author.Nickname, comment.CommentID, in.Text)

	return comment, nil
}

// DeleteComment removes commentID and decrements its post's counter in one
// transaction (spec §4.6.5). Only the comment's author may delete it.
func (s *Service) DeleteComment(ctx context.Context, callerID, commentID string) error {
	var comment Comment
	err := s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if getErr := tx.Get(ctx, docstore.CollectionComments, commentID, &comment); getErr != nil {
			return getErr
		}
		if comment.Author.UserID != callerID {
			return apperr.Forbidden("only the author may delete this comment")
		}
		if delErr := tx.Delete(ctx, docstore.CollectionComments, commentID); delErr != nil {
			return delErr
		}
		return tx.AtomicIncrement(ctx, docstore.CollectionPosts, comment.PostID, "comment_count", -1)
	})
	return err
}
