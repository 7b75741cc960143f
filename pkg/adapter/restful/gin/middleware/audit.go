// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/catways/pkg/core/log"
)

// Audit returns a middleware which logs the POST, PUT, PATCH, and
// DELETE requests after they are handled, along with the user who
// sent them. It must be used after the Auth middleware.
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
		}
		if caller := Caller(c); caller != nil {
			attrs = append(
				attrs,
				log.Stringer("user-id", caller.UserID),
				slog.String("username", caller.Username),
			)
		}
		log.Info(c, "mutation is handled", attrs...)
	}
}
