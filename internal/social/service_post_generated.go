// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/pkg/ids"
)

/*
CreateGeneratedPost writes a Post on the caller's behalf for an image that
already lives at imageURL on a third-party host (the cartoon generation
API's own CDN), rather than a file the caller staged through this
service's own object store. The Job Orchestrator (spec §4.8 step 6) is
the only caller: it is a plain in-process service call, not an HTTP round
trip, so the job worker never has to mint and carry a fresh access token
just to re-enter the API it is already running inside.

Unlike [Service.CreatePost], this skips the staged-file existence/
make-public dance entirely, since imageURL is not one of this service's
object keys to begin with.
*/
func (s *Service) CreateGeneratedPost(ctx context.Context, userID, imageURL, caption string) (Post, error) {
	author, err := s.users.Get(ctx, userID)
	if err != nil {
		return Post{}, err
	}

	pet, err := s.pets.FindFirstPetByOwner(ctx, userID)
	if err != nil {
		if errIsNoMatch(err) {
			return Post{}, apperr.NotFound("Pet")
		}
		return Post{}, err
	}

	now := s.clock.Now()
	post := Post{
		PostID:       ids.New(),
		Author:       author.ToSnapshot(),
		Pet:          pet.ToSnapshot(),
		Text:         caption,
		ImageURLs:    []string{imageURL},
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
