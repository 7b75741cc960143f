// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the accounts
// management and login REST APIs to be accepted and delegated to the
// users use cases respectively.
package usersrs

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/usersuc"
)

type resource struct {
	users func() *usersuc.UseCase
}

// RegisterLogin registers the POST request to /login which checks
// the email and password of a user and returns a bearer token.
// It must be registered on a group which needs no authentication.
func RegisterLogin(r *gin.RouterGroup, users func() *usersuc.UseCase) {
	rs := &resource{users: users}
	r.POST("login", rs.Login)
}

// Register instantiates a resource adapting the users use case with
// the relevant REST APIs including:
//  1. POST and GET requests to /users in order to create or list
//     user accounts,
//  2. GET, PUT, and DELETE requests to /users/:uid in order to fetch,
//     update, or delete a user account.
func Register(r *gin.RouterGroup, users func() *usersuc.UseCase) {
	rs := &resource{users: users}
	r.POST("users", rs.CreateUser)
	r.GET("users", rs.ListUsers)
	r.GET("users/:uid", rs.GetUser)
	r.PUT("users/:uid", rs.UpdateUser)
	r.DELETE("users/:uid", rs.DeleteUser)
}

func (rs *resource) Login(c *gin.Context) {
	req := rs.DserLoginReq(c)
	if req == nil {
		return
	}
	tkn, user, err := rs.users().Login(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tkn, "user": user})
}

func (rs *resource) CreateUser(c *gin.Context) {
	req := rs.DserCreateUserReq(c)
	if req == nil {
		return
	}
	user, err := rs.users().Create(c, req.Username, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (rs *resource) ListUsers(c *gin.Context) {
	list, err := rs.users().List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if list == nil {
		list = []*model.User{}
	}
	c.JSON(http.StatusOK, list)
}

func (rs *resource) GetUser(c *gin.Context) {
	id, err := serdser.ParseID("uid", c.Param("uid"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	user, err := rs.users().Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (rs *resource) UpdateUser(c *gin.Context) {
	req := rs.DserUpdateUserReq(c)
	if req == nil {
		return
	}
	user, err := rs.users().Update(c, req.ID, req.Update)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (rs *resource) DeleteUser(c *gin.Context) {
	id, err := serdser.ParseID("uid", c.Param("uid"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if err = rs.users().Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detail": fmt.Sprintf("user %s is deleted", id),
	})
}
