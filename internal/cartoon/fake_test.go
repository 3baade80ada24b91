// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import "context"

// fakeAnalyzer returns a fixed description, or an error when forced.
type fakeAnalyzer struct {
	description string
	err         error
}

func (a fakeAnalyzer) Analyze(ctx context.Context, image []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return a.description, nil
}

// fakeGenerator returns a fixed result URL, or an error when forced.
type fakeGenerator struct {
	resultURL string
	err       error
}

func (g fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.resultURL, nil
}
