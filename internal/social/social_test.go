// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestExtractMentionCandidates covers spec.md §4.6.4's mention pipeline:
extraction, dedupe, and self-exclusion, independent of user resolution.
*/
func TestExtractMentionCandidates(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		excludeNickname string
		want            []string
	}{
		{name: "single mention", text: "@alice nice shot!", excludeNickname: "bob", want: []string{"alice"}},
		{name: "duplicate mention deduped", text: "@alice hi @alice", excludeNickname: "bob", want: []string{"alice"}},
		{name: "self mention excluded", text: "@me thinks this is great", excludeNickname: "me", want: nil},
		{name: "no mentions", text: "just a plain comment", excludeNickname: "bob", want: nil},
		{name: "multiple distinct mentions preserve order", text: "@alice and @carol should see this", excludeNickname: "bob", want: []string{"alice", "carol"}},
		{name: "unicode nickname characters permitted", text: "@tài_nguyễn hello", excludeNickname: "bob", want: []string{"tài_nguyễn"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractMentionCandidates(tc.text, tc.excludeNickname)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestSubjectCollection confirms like toggling reads/writes the right
// collection for each SubjectType (spec §4.6.6).
func TestSubjectCollection(t *testing.T) {
	s := &Service{}
	assert.Equal(t, "posts", s.subjectCollection(SubjectPost))
	assert.Equal(t, "comments", s.subjectCollection(SubjectComment))
}
