// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package middleware contains the gin-gonic middlewares which are
// shared by all resources, namely the bearer token authentication, the
// audit logging of mutations, and the Prometheus metrics collection.
package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
)

// callerKey is the gin context key of the authenticated caller.
const callerKey = "catweb.caller"

// Authenticator validates a bearer token and returns its caller.
type Authenticator func(ctx context.Context, token string) (
	*model.Caller, error,
)

// Auth returns a middleware which requires an Authorization header
// with the "Bearer <token>" format and validates the token using the
// authn function. Requests without a valid token are aborted with a
// 401 status code. The caller of accepted requests can be obtained by
// the Caller function.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, tkn, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tkn == "" {
			serdser.SerErr(c, cerr.Authentication(fmt.Errorf(
				"%w: bearer token is required", model.ErrInvalidToken,
			)))
			c.Abort()
			return
		}
		caller, err := authn(c, strings.TrimSpace(tkn))
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// Caller returns the authenticated caller of the c request, or nil if
// the Auth middleware was not used.
func Caller(c *gin.Context) *model.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*model.Caller)
	return caller
}
