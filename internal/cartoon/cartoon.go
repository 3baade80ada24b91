// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cartoon implements the Asynchronous Job Orchestrator (spec.md
§4.8): it accepts cartoon-generation requests, hands them to a bounded
worker pool, tracks a small finite-state machine per job, supports
cooperative cancellation, and drives the post-completion fan-out (a
social-graph Post plus a success/failure notification).

The image-analysis and image-generation steps are out-of-scope external
collaborators per §1, reached through the [Analyzer] and [Generator]
interfaces; a deterministic fake of each backs this package's tests.
*/
package cartoon

import "context"

// Analyzer produces a short textual description of a source image, the
// first stage of the cartoon pipeline (spec §4.8 step 2).
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (description string, err error)
}

// Generator invokes the third-party cartoon-image generation API with a
// composed prompt and returns the public URL of the generated image
// (spec §4.8 step 5).
type Generator interface {
	Generate(ctx context.Context, prompt string) (resultImageURL string, err error)
}

// SubmitInput carries submit_cartoon_job's caller-supplied fields.
type SubmitInput struct {
	UserID     string
	StagingKey string
	UserText   string
}
