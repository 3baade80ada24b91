// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/happydog/core/internal/platform/request"
	"github.com/happydog/core/internal/platform/respond"
	"github.com/happydog/core/internal/users"
)

// Handler implements the HTTP surface for signed-upload issuance and the
// raw PUT upload endpoint the issued URL points back at.
type Handler struct {
	store *Store
	users *users.Service
}

// NewHandler constructs a new objectstore [Handler].
func NewHandler(store *Store, usersSvc *users.Service) *Handler {
	return &Handler{store: store, users: usersSvc}
}

// Routes returns the chi.Router for the authenticated /api/uploads group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/url", handler.requestUploadURL)
	return router
}

// RegisterBlobUpload mounts the unauthenticated PUT sink that a signed
// upload URL's token-bearing query string protects, at the exact path
// [Store.GenerateUploadURL] minted (spec §4.3). It is mounted outside
// /api because it is not a bearer-token-authenticated endpoint — the
// token embedded in the URL's query string is the only credential.
func (handler *Handler) RegisterBlobUpload(router chi.Router) {
	router.Put("/internal/blob-upload/*", handler.receiveUpload)
}

type requestUploadURLRequest struct {
	Kind        string `json:"kind"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

/*
POST /api/uploads/url.

Issues a bounded-lifetime signed upload URL for one object (spec §4.3).
The caller later PUTs the file's bytes straight to the returned URL; no
bytes flow through this endpoint itself.
*/
func (handler *Handler) requestUploadURL(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input requestUploadURLRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.store.GenerateUploadURL(request.Context(), user.UserID, UploadKind(input.Kind), input.Filename, input.ContentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, grant)
}

// receiveUpload accepts the PUT a signed upload URL points at, verifying
// the bound token before ever touching the filesystem.
func (handler *Handler) receiveUpload(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "*")
	contentType := request.Header.Get("Content-Type")
	token := request.URL.Query().Get("token")

	if err := handler.store.VerifyUpload(key, contentType, token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.Write(request.Context(), key, request.Body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// currentUser resolves the caller's domain identity from its verified
// bearer claims, provisioning a User on first sight (see
// [users.Service.ResolveFromClaims]).
func currentUser(request *http.Request, usersSvc *users.Service) (users.User, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return users.User{}, err
	}
	return usersSvc.ResolveFromClaims(request.Context(), claims)
}
