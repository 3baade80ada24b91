// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"regexp"

	"github.com/happydog/core/internal/notify"
)

// mentionPattern matches `@nickname` tokens, Unicode word characters
// permitted, per spec §4.6.4.
var mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)

// extractMentionCandidates pulls every distinct `@nickname` token out of
// text, excluding excludeNickname (the commenter's own), in first-seen
// order. Pure and DB-free so the dedupe/self-exclusion logic is directly
// testable.
func extractMentionCandidates(text, excludeNickname string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		nickname := m[1]
		if nickname == excludeNickname || seen[nickname] {
			continue
		}
		seen[nickname] = true
		candidates = append(candidates, nickname)
	}
	return candidates
}

// notifyMentions resolves every candidate nickname in text to a user via
// the unique-nickname index and emits one MENTION notification per
// resolved mentionee. Unresolvable nicknames are silently dropped (spec
// §8's boundary behavior).
func (s *Service) notifyMentions(ctx context.Context, commenterID, commenterNickname, commentID, text string) {
	for _, nickname := range extractMentionCandidates(text, commenterNickname) {
		mentioned, err := s.users.FindByNickname(ctx, nickname)
		if err != nil {
			continue
		}
		if mentioned.UserID == commenterID {
			continue
		}

		s.notifier.Notify(ctx, mentioned.UserID, commenterID, notify.TypeMention, commentID, &text)
	}
}
