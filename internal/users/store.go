// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"

	"github.com/happydog/core/internal/platform/docstore"
)

// Store persists User documents in the "users" DocStore collection.
type Store struct {
	docs *docstore.Store
}

// NewStore constructs a [Store] bound to a shared docstore handle.
func NewStore(docs *docstore.Store) *Store {
	return &Store{docs: docs}
}

// Get fetches a User by id.
func (s *Store) Get(ctx context.Context, userID string) (User, error) {
	return docstore.Get[User](ctx, s.docs, docstore.CollectionUsers, userID)
}

// Create writes a brand-new User document.
func (s *Store) Create(ctx context.Context, u User) error {
	return docstore.Set(ctx, s.docs, docstore.CollectionUsers, u.UserID, u)
}

// FindByExternalSub resolves the identity-provider subject embedded in a
// verified bearer token to a User. external_sub carries a unique index
// (migration 000001), so at most one document matches.
func (s *Store) FindByExternalSub(ctx context.Context, externalSub string) (User, error) {
	result, err := docstore.Query[User](ctx, s.docs, docstore.CollectionUsers, docstore.QueryParams{
		Filters: []docstore.Filter{{Field: "external_sub", Op: docstore.OpEq, Value: externalSub}},
		OrderBy: "joined_at",
		Limit:   1,
	})
	if err != nil {
		return User{}, err
	}
	if len(result.Items) == 0 {
		return User{}, docstore.ErrNoMatch
	}
	return result.Items[0], nil
}

// FindByNickname resolves a unique nickname to a User, used by the social
// graph's @mention extraction (spec §4.6.4).
func (s *Store) FindByNickname(ctx context.Context, nickname string) (User, error) {
	result, err := docstore.Query[User](ctx, s.docs, docstore.CollectionUsers, docstore.QueryParams{
		Filters: []docstore.Filter{{Field: "nickname", Op: docstore.OpEq, Value: nickname}},
		OrderBy: "joined_at",
		Limit:   1,
	})
	if err != nil {
		return User{}, err
	}
	if len(result.Items) == 0 {
		return User{}, docstore.ErrNoMatch
	}
	return result.Items[0], nil
}
