// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates their
// registration on a gin-gonic engine, so the use cases which are
// maintained by an application use case can be reached by REST APIs.
package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/catwaysrs"
	"github.com/momeni/catways/pkg/adapter/restful/gin/middleware"
	"github.com/momeni/catways/pkg/adapter/restful/gin/reservationsrs"
	"github.com/momeni/catways/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/appuc"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/catweb/v1"

// Register registers the health check and all resources on the e
// gin-gonic engine. Resources ask the app use case for the current use
// case objects per request, so they observe a reloaded configuration.
// All APIs but the login API require a bearer token which is checked
// by the users use case. The /healthz and /metrics (if enabled while
// creating the engine) are not authenticated.
func Register(e *gin.Engine, app *appuc.UseCase) error {
	if e == nil || app == nil {
		return errors.New("engine and application use case are required")
	}
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r := e.Group(BasePath)
	usersrs.RegisterLogin(r, app.UsersUseCase)

	authn := func(ctx context.Context, tkn string) (*model.Caller, error) {
		return app.UsersUseCase().Authenticate(ctx, tkn)
	}
	ar := r.Group("", middleware.Auth(authn), middleware.Audit())
	usersrs.Register(ar, app.UsersUseCase)
	catwaysrs.Register(ar, app.CatwaysUseCase)
	reservationsrs.Register(ar, app.ReservationsUseCase)
	return nil
}
