// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package biometric

import (
	"context"
	"crypto/sha256"

	"github.com/happydog/core/internal/platform/constants"
)

/*
StubDetector and StubEmbedder are the production placeholders wired in
cmd/api/main.go until a real nose-print detection/embedding model is
integrated. Model internals are an explicitly out-of-scope collaborator
(spec §1) behind the [Detector]/[Embedder] interfaces; these exist purely
so the rest of the pipeline — including the crash-recovery-ordered
decision path in [Service] — has something to run against end to end.

Neither type does anything resembling real computer vision. StubDetector
always reports a miss, which [Service.Admit] already treats as "run the
embedder over the full frame" (spec §4.7's graceful-degradation note).
StubEmbedder hashes the image bytes into a unit-ish vector so that
repeated admissions of the same file are at least deterministic, which is
enough to exercise the duplicate/outlier classification paths.
*/
type StubDetector struct{}

func (StubDetector) Detect(ctx context.Context, image []byte) ([]byte, bool) {
	return nil, false
}

type StubEmbedder struct{}

func (StubEmbedder) Embed(ctx context.Context, image []byte) ([]float32, error) {
	sum := sha256.Sum256(image)
	vector := make([]float32, constants.EmbeddingDimension)
	for i := range vector {
		vector[i] = float32(sum[i%len(sum)]) / 255
	}
	return vector, nil
}
