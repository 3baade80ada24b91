// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/happydog/core/internal/platform/request"
	"github.com/happydog/core/internal/platform/respond"
	"github.com/happydog/core/internal/users"
	"github.com/happydog/core/pkg/pagination"
)

// Handler implements the HTTP surface for the social graph: post
// creation/feed, comments, and the like toggle (spec §4.6, §6.1).
type Handler struct {
	service *Service
	users   *users.Service
}

// NewHandler constructs a new social [Handler].
func NewHandler(service *Service, usersSvc *users.Service) *Handler {
	return &Handler{service: service, users: usersSvc}
}

// Routes returns the chi.Router for the /api/posts group. The feed
// endpoint is reachable by anonymous callers (spec §4.6.2); every other
// route requires a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.feed)
	router.Post("/", handler.createPost)
	router.Post("/{postID}/like", handler.toggleLike)
	router.Post("/{postID}/comments", handler.createComment)
	return router
}

type createPostRequest struct {
	Text      string   `json:"text"`
	FilePaths []string `json:"file_paths"`
}

/*
POST /api/posts.

Publishes a new post from the caller's pet, resolving staged file paths
to public URLs in the process (spec §4.6.1).
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), CreatePostInput{
		UserID:    user.UserID,
		Text:      input.Text,
		FilePaths: input.FilePaths,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
GET /api/posts.

Returns a cursor page of the newest-first feed (spec §4.6.2). An
unauthenticated caller sees every is_liked as false.
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	var viewerID string
	if claims := requestutil.Claims(request); claims != nil {
		user, err := handler.users.ResolveFromClaims(request.Context(), claims)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		viewerID = user.UserID
	}

	params := pagination.CursorFromRequest(request, pagination.DefaultLimit, pagination.MaxLimit)

	items, nextCursor, err := handler.service.Feed(request.Context(), viewerID, params.Cursor, params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewCursorMeta(nextCursor))
}

/*
POST /api/posts/{postID}/like.

Flips the caller's like on a post (spec §4.6.6).
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID := requestutil.ID(request, "postID")

	result, err := handler.service.ToggleLike(request.Context(), ToggleLikeInput{
		UserID:      user.UserID,
		SubjectType: SubjectPost,
		SubjectID:   postID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"liked": result.Liked})
}

type createCommentRequest struct {
	Text string `json:"text"`
}

/*
POST /api/posts/{postID}/comments.

Adds a comment to a post, fanning out COMMENT and MENTION notifications
after commit (spec §4.6.4).
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID := requestutil.ID(request, "postID")

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), CreateCommentInput{
		UserID: user.UserID,
		PostID: postID,
		Text:   input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func currentUser(request *http.Request, usersSvc *users.Service) (users.User, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return users.User{}, err
	}
	return usersSvc.ResolveFromClaims(request.Context(), claims)
}
