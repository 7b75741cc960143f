// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package catwaysrs realizes the catways resource, allowing the catways
// registry REST APIs to be accepted and delegated to the catways use
// cases respectively.
package catwaysrs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
)

type resource struct {
	catways func() *catwaysuc.UseCase
}

// Register instantiates a resource adapting the catways use case with
// the relevant REST APIs including:
//  1. POST and GET requests to /catways in order to create or list
//     catways,
//  2. GET, PUT, and DELETE requests to /catways/:catway in order to
//     fetch, update, or delete a catway which is identified by its
//     UUID or its number.
//
// The catways function is called per request, so the use case object
// may be replaced while the server is running.
func Register(r *gin.RouterGroup, catways func() *catwaysuc.UseCase) {
	rs := &resource{catways: catways}
	r.POST("catways", rs.CreateCatway)
	r.GET("catways", rs.ListCatways)
	r.GET("catways/:catway", rs.GetCatway)
	r.PUT("catways/:catway", rs.UpdateCatway)
	r.DELETE("catways/:catway", rs.DeleteCatway)
}

func (rs *resource) CreateCatway(c *gin.Context) {
	req := rs.DserCreateCatwayReq(c)
	if req == nil {
		return
	}
	catway, err := rs.catways().Create(c, req.Number, req.Type, req.State)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, catway)
}

func (rs *resource) ListCatways(c *gin.Context) {
	list, err := rs.catways().List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if list == nil {
		list = []*model.Catway{}
	}
	c.JSON(http.StatusOK, list)
}

func (rs *resource) GetCatway(c *gin.Context) {
	catway, err := rs.find(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, catway)
}

func (rs *resource) UpdateCatway(c *gin.Context) {
	u := rs.DserUpdateCatwayReq(c)
	if u == nil {
		return
	}
	catway, err := rs.find(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	catway, err = rs.catways().Update(c, catway.ID, *u)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, catway)
}

func (rs *resource) DeleteCatway(c *gin.Context) {
	catway, err := rs.find(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if err = rs.catways().Delete(c, catway.ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detail": fmt.Sprintf("catway %d is deleted", catway.Number),
	})
}

// find fetches the catway which is identified by the catway path
// parameter, either as a number or as a UUID.
func (rs *resource) find(c *gin.Context) (*model.Catway, error) {
	ref, err := serdser.ParseCatwayRef(c.Param("catway"))
	if err != nil {
		return nil, err
	}
	return rs.get(c, ref)
}

func (rs *resource) get(
	ctx context.Context, ref serdser.CatwayRef,
) (*model.Catway, error) {
	if ref.Number != 0 {
		return rs.catways().GetByNumber(ctx, ref.Number)
	}
	return rs.catways().Get(ctx, ref.ID)
}
