// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/happydog/core/internal/notify"
)

/*
TestNotify_SelfNotificationDropsSilently checks spec.md §4.5's first rule:
recipient == sender is dropped before any storage or sender-resolution
call is made, so a zero-configured Notifier must not panic.
*/
func TestNotify_SelfNotificationDropsSilently(t *testing.T) {
	n := notify.NewNotifier(nil, nil, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Must return without touching the (nil) docstore/users/redis/clock
	// dependencies, since the self-notification check short-circuits first.
	n.Notify(context.Background(), "user-1", "user-1", notify.TypePostLike, "post-1", nil)
}
