// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/happydog/core/internal/users"
)

/*
TestToSnapshot verifies the denormalized Snapshot carries only the
fields Post/Comment/Notification embed, per spec.md §3's denormalization
discipline.
*/
func TestToSnapshot(t *testing.T) {
	profileImage := "https://cdn.happydog.test/avatar.jpg"
	u := users.User{
		UserID:          "user-1",
		ExternalSub:     "sub-1",
		Email:           "tai@happydog.app",
		Nickname:        "tai",
		ProfileImageURL: &profileImage,
		JoinedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	snap := u.ToSnapshot()

	assert.Equal(t, u.UserID, snap.UserID)
	assert.Equal(t, u.Nickname, snap.Nickname)
	require := assert.New(t)
	require.Equal(profileImage, *snap.ProfileImageURL)
}
