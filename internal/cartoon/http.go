// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/happydog/core/internal/platform/request"
	"github.com/happydog/core/internal/platform/respond"
	"github.com/happydog/core/internal/users"
)

// Handler implements the HTTP surface for cartoon job submission, polling,
// and cancellation (spec §4.8, §6.1).
type Handler struct {
	service *Service
	users   *users.Service
}

// NewHandler constructs a new cartoon [Handler].
func NewHandler(service *Service, usersSvc *users.Service) *Handler {
	return &Handler{service: service, users: usersSvc}
}

// Routes returns the chi.Router for the authenticated /api/cartoon-jobs
// group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	router.Get("/{jobID}", handler.getJob)
	router.Delete("/{jobID}", handler.cancel)
	return router
}

type submitRequest struct {
	StagingKey string `json:"staging_key"`
	UserText   string `json:"user_text"`
}

/*
POST /api/cartoon-jobs.

Submits a staged image for cartoon generation. The job is written and
handed to the worker pool before this call returns; the caller polls
GET /api/cartoon-jobs/{job_id} for completion (spec §4.8).
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	job, err := handler.service.Submit(request.Context(), SubmitInput{
		UserID:     user.UserID,
		StagingKey: input.StagingKey,
		UserText:   input.UserText,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Accepted(writer, job)
}

/*
GET /api/cartoon-jobs/{jobID}.

Polls a job's current status. A caller who does not own jobID sees
NotFound, the same as a jobID that does not exist (spec §4.8's
Visibility section).
*/
func (handler *Handler) getJob(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	jobID := requestutil.ID(request, "jobID")

	job, err := handler.service.GetJob(request.Context(), jobID, user.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, job)
}

/*
DELETE /api/cartoon-jobs/{jobID}.

Requests cancellation of an in-flight job. The job moves to CANCELING
immediately; the worker observes it at its next checkpoint and
transitions it to FAILED (spec §4.8).
*/
func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	user, err := currentUser(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	jobID := requestutil.ID(request, "jobID")

	if err := handler.service.Cancel(request.Context(), jobID, user.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func currentUser(request *http.Request, usersSvc *users.Service) (users.User, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return users.User{}, err
	}
	return usersSvc.ResolveFromClaims(request.Context(), claims)
}
