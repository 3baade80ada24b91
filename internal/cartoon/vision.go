// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import "context"

/*
StubAnalyzer and StubGenerator are the production placeholders wired in
cmd/api/main.go. The vision-description model and the image-generation
API are both out-of-scope external collaborators (spec §1) — the
contract the pipeline depends on is the [Analyzer]/[Generator] interface,
not any particular vendor SDK, so none is imported here (go-openai et al.
from the rest of the pack stay unwired; see DESIGN.md).

StubAnalyzer always succeeds with a generic description so [Service.runJob]
can be exercised end to end without a live vision model. StubGenerator
echoes back a deterministic placeholder URL rather than a real asset.
*/
type StubAnalyzer struct{}

func (StubAnalyzer) Analyze(ctx context.Context, image []byte) (string, error) {
	return "a happy dog", nil
}

type StubGenerator struct {
	baseURL string
}

func NewStubGenerator(baseURL string) StubGenerator {
	return StubGenerator{baseURL: baseURL}
}

func (g StubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.baseURL + "/placeholder/cartoon.png", nil
}
