// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/platform/sec"
	"github.com/happydog/core/internal/platform/validate"
	"github.com/happydog/core/pkg/clock"
	"github.com/happydog/core/pkg/ids"
)

// Service provides the identity operations the rest of the core depends
// on: resolving an already-verified bearer token to a User, and
// provisioning a User record the first time that subject is seen.
type Service struct {
	store *Store
	clock clock.Clock
}

// NewService constructs a [Service].
func NewService(store *Store, c clock.Clock) *Service {
	return &Service{store: store, clock: c}
}

// ResolveOrProvision returns the User for externalSub, creating one on
// first sight. Token issuance lives outside this core (spec §1); this is
// the boundary where an already-verified identity becomes a domain User.
func (s *Service) ResolveOrProvision(ctx context.Context, externalSub, email, nickname string) (User, error) {
	existing, err := s.store.FindByExternalSub(ctx, externalSub)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, docstore.ErrNoMatch) {
		return User{}, err
	}

	v := &validate.Validator{}
	v.Required("email", email).Required("nickname", nickname)
	if err := v.Err(); err != nil {
		return User{}, err
	}

	u := User{
		UserID:      ids.New(),
		ExternalSub: externalSub,
		Email:       email,
		Nickname:    nickname,
		JoinedAt:    s.clock.Now(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

/*
ResolveFromClaims is the HTTP boundary's identity seam: it turns an
already-verified bearer token's claims into a domain User, provisioning
one on the caller's first request. The token's `uid` claim (claims.UserID) is
opaque to this core (spec §6.1) and is never used as the domain
UserID — a fresh one is minted on first sight, exactly as
[Service.ResolveOrProvision] does for any other externalSub. Email has no
JWT claim to source from (token issuance is out of scope, §1); a
placeholder derived from the subject stands in until a profile surface
can replace it.
*/
func (s *Service) ResolveFromClaims(ctx context.Context, claims *sec.AuthClaims) (User, error) {
	placeholderEmail := fmt.Sprintf("%s@users.happydog.invalid", claims.UserID)
	return s.ResolveOrProvision(ctx, claims.UserID, placeholderEmail, claims.Username)
}

// Get fetches a User by id, translating a missing document into
// apperr.NotFound("User").
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
			return User{}, apperr.NotFound("User")
		}
		return User{}, err
	}
	return u, nil
}

// FindByNickname resolves a unique nickname, used by mention extraction.
func (s *Service) FindByNickname(ctx context.Context, nickname string) (User, bool, error) {
	u, err := s.store.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, docstore.ErrNoMatch) {
			return User{}, false, nil
		}
		return User{}, false, err
	}
	return u, true, nil
}
