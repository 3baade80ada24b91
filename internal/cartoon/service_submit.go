// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"context"
	"log/slog"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/constants"
	"github.com/happydog/core/internal/platform/validate"
	"github.com/happydog/core/pkg/ids"
)

/*
Submit writes a new CartoonJob in PROCESSING and hands it to the worker
pool (spec §4.8's Execution steps 1-3).

The queue hand-off is attempted before this call returns, not fire-and-
forget: if the pool's bounded submission queue is full for longer than
the configured enqueue timeout, the job is immediately transitioned to
FAILED (rather than left stranded in PROCESSING with no worker ever
scheduled to pick it up) and Overloaded is returned to the caller. This
sharpens spec §4.8's literal "(1) write, (2) return 202, (3) hand off"
step order into a fail-closed contract — documented in DESIGN.md as the
resolution, since the spec's prose does not say what happens to the job
document when the hand-off itself cannot proceed.
*/
func (s *Service) Submit(ctx context.Context, in SubmitInput) (CartoonJob, error) {
	v := &validate.Validator{}
	v.Required("staging_key", in.StagingKey).MaxLen("user_text", in.UserText, constants.UserTextMaxLength)
	if err := v.Err(); err != nil {
		return CartoonJob{}, err
	}

	exists, err := s.objects.Exists(ctx, in.StagingKey)
	if err != nil {
		return CartoonJob{}, err
	}
	if !exists {
		return CartoonJob{}, apperr.NotFound("Uploaded file")
	}

	publicURL, err := s.objects.MakePublic(ctx, in.StagingKey)
	if err != nil {
		return CartoonJob{}, err
	}

	now := s.clock.Now()
	job := CartoonJob{
		JobID:            ids.New(),
		UserID:           in.UserID,
		Status:           StatusProcessing,
		OriginalImageURL: publicURL,
		UserText:         in.UserText,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return CartoonJob{}, err
	}

	if err := s.enqueue(job.JobID); err != nil {
		reason := "cartoon generation queue is full, try again shortly"
		if transErr := s.jobs.Transition(ctx, job.JobID, StatusFailed, map[string]any{"error_message": reason}, s.clock.Now()); transErr != nil {
			s.logger.Error("cartoon_job_overload_transition_failed", slog.String("job_id", job.JobID), slog.Any("error", transErr))
		}
		return CartoonJob{}, err
	}

	return job, nil
}
