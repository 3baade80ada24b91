// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"log/slog"

	"github.com/happydog/core/internal/notify"
	"github.com/happydog/core/internal/objectstore"
	"github.com/happydog/core/internal/petcare"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/users"
	"github.com/happydog/core/pkg/clock"
)

// Service implements the Transactional Social Graph (spec §4.6): post
// creation/feed/mutation, comment creation/deletion, like toggling, and
// the mention fan-out comment creation triggers.
type Service struct {
	docs     *docstore.Store
	posts    *PostStore
	comments *CommentStore
	likes    *LikeStore
	users    *users.Store
	pets     *petcare.Store
	objects  *objectstore.Store
	notifier *notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService constructs a [Service] wired to every collaborator this
// component's operations span.
func NewService(
	docs *docstore.Store,
	posts *PostStore,
	comments *CommentStore,
	likes *LikeStore,
	userStore *users.Store,
	petStore *petcare.Store,
	objects *objectstore.Store,
	notifier *notify.Notifier,
	c clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		docs:     docs,
		posts:    posts,
		comments: comments,
		likes:    likes,
		users:    userStore,
		pets:     petStore,
		objects:  objects,
		notifier: notifier,
		clock:    c,
		logger:   logger,
	}
}
