// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"log/slog"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/platform/validate"
	"github.com/happydog/core/pkg/ids"
)

const (
	minPostTextLen = 1
	maxPostTextLen = 2000
)

// CreatePostInput carries create_post's caller-supplied fields (spec §4.6.1).
type CreatePostInput struct {
	UserID    string
	Text      string
	FilePaths []string
}

/*
CreatePost assembles a new Post for the caller.

Flow, per spec §4.6.1: (1) verify the user exists and capture its
snapshot; (2) locate the caller's pet (first match — this surface assumes
one pet per user); (3) for every staged file path, confirm the blob exists
and flip it public; (4) assemble the Post with denormalized snapshots and
the resulting public URLs; (5) write once. An unresolvable user or pet
fails with ResourceNotFound; an out-of-bounds text or file count fails
with ValidationError.
*/
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (Post, error) {
	v := &validate.Validator{}
	v.MinLen("text", in.Text, minPostTextLen).
		MaxLen("text", in.Text, maxPostTextLen).
		Custom("file_paths", len(in.FilePaths) == 0, "At least one file is required")
	if err := v.Err(); err != nil {
		return Post{}, err
	}

	author, err := s.users.Get(ctx, in.UserID)
	if err != nil {
		return Post{}, err
	}

	pet, err := s.pets.FindFirstPetByOwner(ctx, in.UserID)
	if err != nil {
		if errIsNoMatch(err) {
			return Post{}, apperr.NotFound("Pet")
		}
		return Post{}, err
	}

	imageURLs := make([]string, 0, len(in.FilePaths))
	for _, filePath := range in.FilePaths {
		exists, err := s.objects.Exists(ctx, filePath)
		if err != nil {
			return Post{}, err
		}
		if !exists {
			return Post{}, apperr.NotFound("Uploaded file")
		}
		publicURL, err := s.objects.MakePublic(ctx, filePath)
		if err != nil {
			return Post{}, err
		}
		imageURLs = append(imageURLs, publicURL)
	}

	now := s.clock.Now()
	post := Post{
		PostID:       ids.New(),
		Author:       author.ToSnapshot(),
		Pet:          pet.ToSnapshot(),
		Text:         in.Text,
		ImageURLs:    imageURLs,
		LikeCount:    0,
		CommentCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := docstore.Set(ctx, s.docs, docstore.CollectionPosts, post.PostID, post); err != nil {
		return Post{}, err
	}

	return post, nil
}

// FeedItem is a Post enriched with the viewer's like state (spec §4.6.2).
type FeedItem struct {
	Post
	IsLiked bool `json:"is_liked"`
}

// Feed returns a page of posts newest-first. viewerID is empty for an
// unauthenticated caller, in which case every IsLiked is false.
func (s *Service) Feed(ctx context.Context, viewerID, cursor string, limit int) ([]FeedItem, string, error) {
	page, err := s.posts.Feed(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	subjectIDs := make([]string, len(page.Items))
	for i, p := range page.Items {
		subjectIDs[i] = p.PostID
	}

	liked, err := s.likes.BatchLiked(ctx, viewerID, SubjectPost, subjectIDs)
	if err != nil {
		return nil, "", err
	}

	items := make([]FeedItem, len(page.Items))
	for i, p := range page.Items {
		items[i] = FeedItem{Post: p, IsLiked: liked[p.PostID]}
	}

	return items, page.NextCursor, nil
}

// UpdatePostText lets the author revise text. Every other field, including
// media, is immutable after creation (spec §4.6.3).
func (s *Service) UpdatePostText(ctx context.Context, callerID, postID, text string) (Post, error) {
	v := &validate.Validator{}
	v.MinLen("text", text, minPostTextLen).MaxLen("text", text, maxPostTextLen)
	if err := v.Err(); err != nil {
		return Post{}, err
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if post.Author.UserID != callerID {
		return Post{}, apperr.Forbidden("only the author may edit this post")
	}

	post.Text = text
	post.UpdatedAt = s.clock.Now()
	if err := docstore.Set(ctx, s.docs, docstore.CollectionPosts, post.PostID, post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// DeletePost removes postID. Per spec §4.6.3 the comment subcollection and
// its likes are NOT cascaded here — they become orphans swept by an
// out-of-scope background task. Only the author may delete. Media deletion
// after commit is best-effort and never surfaces a failure to the caller.
func (s *Service) DeletePost(ctx context.Context, callerID, postID string) error {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author.UserID != callerID {
		return apperr.Forbidden("only the author may delete this post")
	}

	err = s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		return tx.Delete(ctx, docstore.CollectionPosts, postID)
	})
	if err != nil {
		return err
	}

	s.deleteMediaBestEffort(ctx, post.ImageURLs)
	return nil
}

// deleteMediaBestEffort is called after a post's controlling document is
// already gone. Failures are logged, never surfaced, per spec §4.3/§4.6.3.
func (s *Service) deleteMediaBestEffort(ctx context.Context, imageURLs []string) {
	for _, publicURL := range imageURLs {
		key, ok := s.objects.KeyFromPublicURL(publicURL)
		if !ok {
			continue
		}
		if err := s.objects.Delete(ctx, key); err != nil {
			s.logger.Warn("post_media_delete_failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func errIsNoMatch(err error) bool {
	if err == docstore.ErrNoMatch {
		return true
	}
	appErr := apperr.As(err)
	return appErr != nil && appErr.Code == "NOT_FOUND"
}
