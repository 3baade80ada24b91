// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	requestutil "github.com/happydog/core/internal/platform/request"
	"github.com/happydog/core/internal/users"
)

// resolveCaller resolves the caller's domain identity from its verified
// bearer claims, provisioning a User on first sight (see
// [users.Service.ResolveFromClaims]).
func resolveCaller(request *http.Request, usersSvc *users.Service) (users.User, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return users.User{}, err
	}
	return usersSvc.ResolveFromClaims(request.Context(), claims)
}
