// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"context"
	"log/slog"

	"github.com/happydog/core/internal/notify"
	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/constants"
)

// GetJob fetches jobID iff callerID is its owner. A non-owner (or a
// nonexistent job) both fail NotFound — never Forbidden — so a caller
// cannot distinguish "not yours" from "doesn't exist" (spec §4.8's
// Visibility section).
func (s *Service) GetJob(ctx context.Context, jobID, callerID string) (CartoonJob, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return CartoonJob{}, err
	}
	if job.UserID != callerID {
		return CartoonJob{}, apperr.NotFound("CartoonJob")
	}
	return job, nil
}

/*
Cancel requests cancellation of jobID on behalf of callerID (spec §4.8).
Ownership is checked the same way GetJob checks it, so a non-owner again
sees NotFound rather than Forbidden. If the job is not currently
PROCESSING — already CANCELING, or already terminal — the transition
fails InvalidState(409); the worker, not this call, is what actually
resolves a CANCELING job, at its next cancellation checkpoint. It moves
to FAILED if the checkpoint lands before the generation request is
issued, or to COMPLETED if cancellation was observed too late to stop
the Post that request produces from being published.
*/
func (s *Service) Cancel(ctx context.Context, jobID, callerID string) error {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.UserID != callerID {
		return apperr.NotFound("CartoonJob")
	}

	return s.jobs.Transition(ctx, jobID, StatusCanceling, nil, s.clock.Now())
}

/*
runJob executes one job's pipeline end to end (spec §4.8's Execution
steps 1 and 3-7). It always runs on a background context, detached from
whatever request originally submitted the job.
*/
func (s *Service) runJob(ctx context.Context, jobID string) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		s.logger.Error("cartoon_job_fetch_failed", slog.String("job_id", jobID), slog.Any("error", err))
		return
	}
	if job.Status == StatusCanceling {
		s.failJob(ctx, job, "canceled by user")
		return
	}

	key, ok := s.objects.KeyFromPublicURL(job.OriginalImageURL)
	if !ok {
		s.failJob(ctx, job, "source image unavailable")
		return
	}
	image, err := s.objects.Download(ctx, key)
	if err != nil {
		s.failJob(ctx, job, err.Error())
		return
	}

	description, err := s.analyzer.Analyze(ctx, image)
	if err != nil {
		s.failJob(ctx, job, err.Error())
		return
	}

	prompt := BuildPrompt(description, job.UserText)

	if s.isCanceling(ctx, jobID) {
		s.failJob(ctx, job, "canceled by user")
		return
	}

	if !s.breaker.Allow(ctx) {
		s.failJob(ctx, job, "cartoon generation is temporarily unavailable, try again shortly")
		return
	}

	resultURL, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.breaker.RecordFailure(ctx)
		s.failJob(ctx, job, err.Error())
		return
	}
	s.breaker.RecordSuccess(ctx)

	caption := job.UserText
	if caption == "" {
		caption = description
	}
	post, err := s.social.CreateGeneratedPost(ctx, job.UserID, resultURL, caption)
	if err != nil {
		s.logger.Error("cartoon_post_create_failed", slog.String("job_id", jobID), slog.Any("error", err))
		s.failJob(ctx, job, "failed to publish the generated cartoon")
		return
	}

	if err := s.jobs.Transition(ctx, jobID, StatusCompleted, map[string]any{"result_image_url": resultURL}, s.clock.Now()); err != nil {
		s.logger.Error("cartoon_job_complete_failed", slog.String("job_id", jobID), slog.Any("error", err))
		return
	}
	s.notifier.Notify(ctx, job.UserID, constants.SystemSenderID, notify.TypeCartoonSuccess, post.PostID, &post.Text)
}

// isCanceling re-reads a job's current state, the cancellation
// checkpoint spec §4.8 step 4 calls for between prompt composition and
// the generation call.
func (s *Service) isCanceling(ctx context.Context, jobID string) bool {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return false
	}
	return job.Status == StatusCanceling
}

// failJob transitions job to FAILED with a truncated error message and
// emits CARTOON_FAILED (spec §4.8 step 7).
func (s *Service) failJob(ctx context.Context, job CartoonJob, reason string) {
	msg := truncate(reason, constants.ErrorMessageTruncateLength)
	if err := s.jobs.Transition(ctx, job.JobID, StatusFailed, map[string]any{"error_message": msg}, s.clock.Now()); err != nil {
		s.logger.Error("cartoon_job_fail_transition_failed", slog.String("job_id", job.JobID), slog.Any("error", err))
		return
	}
	s.notifier.Notify(ctx, job.UserID, constants.SystemSenderID, notify.TypeCartoonFailed, job.JobID, &msg)
}

// truncate bounds s to at most n runes, the contract
// constants.ErrorMessageTruncateLength names for CartoonJob.error_message.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
