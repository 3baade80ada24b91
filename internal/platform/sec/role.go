// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole represents the identity class carried in a verified bearer
// token's `rol` claim.
//
// HappyDog has no moderator/admin surface in this core — every endpoint in
// spec.md §6.1 is either public or owner-scoped — so there is no role
// hierarchy to enforce here. The type is kept for [RoleMember];
// [AuthClaims] itself carries the `rol` claim as a plain string.
type UserRole string

const (
	// RoleMember is the only role this core's endpoints recognize.
	RoleMember UserRole = "member"
)
