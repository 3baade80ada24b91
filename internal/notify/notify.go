// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify implements the Notification Fan-out helper (spec.md §4.5).

It is a synchronous helper invoked from inside service methods, always
after a transaction has committed, never from inside one — a write here
must never roll back an already-committed social-graph mutation. It is
grounded on original_source's notification_service.py: self-notification
is dropped silently, the sender is snapshotted by a single read (or the
constant "system"/"HappyDog" sender for system-originated notifications),
and any failure is logged and swallowed rather than surfaced to the
caller.
*/
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/happydog/core/internal/platform/constants"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/users"
	"github.com/happydog/core/pkg/clock"
	"github.com/happydog/core/pkg/ids"
)

// Type enumerates the Notification.type values spec.md §3 names.
type Type string

const (
	TypePostLike       Type = "POST_LIKE"
	TypeCommentLike    Type = "COMMENT_LIKE"
	TypeComment        Type = "COMMENT"
	TypeMention        Type = "MENTION"
	TypeCartoonSuccess Type = "CARTOON_SUCCESS"
	TypeCartoonFailed  Type = "CARTOON_FAILED"
)

// Notification is the document written to the "notifications" collection.
type Notification struct {
	NotificationID string          `json:"notification_id"`
	RecipientID    string          `json:"recipient_id"`
	Sender         users.Snapshot  `json:"sender"`
	Type           Type            `json:"type"`
	TargetID       string          `json:"target_id"`
	TargetSummary  *string         `json:"target_summary,omitempty"`
	IsRead         bool            `json:"is_read"`
	CreatedAt      time.Time       `json:"created_at"`
}

// systemSnapshot is the constant sender used for CartoonJob terminal
// transitions (spec §4.5).
var systemSnapshot = users.Snapshot{
	UserID:   constants.SystemSenderID,
	Nickname: constants.SystemSenderNickname,
}

// Notifier fans notifications out to the DocStore, de-duplicating bursts
// of the same (recipient, sender, type, target) arriving within a short window
// (SPEC_FULL.md §4's resolution of the notification-storm open question).
type Notifier struct {
	docs     *docstore.Store
	users    *users.Store
	redis    *redis.Client
	clock    clock.Clock
	logger   *slog.Logger
}

// NewNotifier constructs a [Notifier].
func NewNotifier(docs *docstore.Store, userStore *users.Store, redisClient *redis.Client, c clock.Clock, logger *slog.Logger) *Notifier {
	return &Notifier{docs: docs, users: userStore, redis: redisClient, clock: c, logger: logger}
}

// Notify creates one Notification document for recipientID, attributing it
// to senderID. It never returns an error to the caller's own operation —
// every failure is logged and swallowed, per spec §4.5.
func (n *Notifier) Notify(ctx context.Context, recipientID, senderID string, nType Type, targetID string, targetSummary *string) {
	if recipientID == senderID {
		return
	}

	if n.isDuplicate(ctx, recipientID, senderID, nType, targetID) {
		return
	}

	sender, ok := n.resolveSender(ctx, senderID)
	if !ok {
		return
	}

	notification := Notification{
		NotificationID: ids.New(),
		RecipientID:    recipientID,
		Sender:         sender,
		Type:           nType,
		TargetID:       targetID,
		TargetSummary:  targetSummary,
		IsRead:         false,
		CreatedAt:      n.clock.Now(),
	}

	if err := docstore.Set(ctx, n.docs, docstore.CollectionNotifications, notification.NotificationID, notification); err != nil {
		n.logger.Warn("notification_write_failed",
			slog.String("recipient_id", recipientID),
			slog.String("type", string(nType)),
			slog.Any("error", err))
	}
}

func (n *Notifier) resolveSender(ctx context.Context, senderID string) (users.Snapshot, bool) {
	if senderID == constants.SystemSenderID {
		return systemSnapshot, true
	}

	sender, err := n.users.Get(ctx, senderID)
	if err != nil {
		n.logger.Warn("notification_sender_not_found", slog.String("sender_id", senderID))
		return users.Snapshot{}, false
	}
	return sender.ToSnapshot(), true
}

func (n *Notifier) isDuplicate(ctx context.Context, recipientID, senderID string, nType Type, targetID string) bool {
	if n.redis == nil {
		return false
	}

	key := fmt.Sprintf("%s%s:%s:%s:%s", constants.RedisPrefixNotifyDedupe, recipientID, senderID, nType, targetID)
	set, err := n.redis.SetNX(ctx, key, 1, constants.NotificationDedupeWindow).Result()
	if err != nil {
		// Redis unavailable: fail open rather than suppress real notifications.
		return false
	}
	return !set
}
