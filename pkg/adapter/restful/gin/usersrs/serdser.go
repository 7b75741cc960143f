// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/model"
)

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createUserReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type rawUpdateUserReq struct {
	Username *string `json:"username" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=1,max=72"`
}

type updateUserReq struct {
	ID     uuid.UUID
	Update model.UserUpdate
}

func (rs *resource) DserLoginReq(c *gin.Context) *loginReq {
	req := &loginReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserCreateUserReq(c *gin.Context) *createUserReq {
	req := &createUserReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserUpdateUserReq(c *gin.Context) *updateUserReq {
	id, err := serdser.ParseID("uid", c.Param("uid"))
	if err != nil {
		serdser.SerErr(c, err)
		return nil
	}
	req := &rawUpdateUserReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	u := model.UserUpdate{}
	if req.Username != nil {
		u.Username = model.Some(*req.Username)
	}
	if req.Email != nil {
		u.Email = model.Some(*req.Email)
	}
	if req.Password != nil {
		u.Password = model.Some(*req.Password)
	}
	return &updateUserReq{ID: id, Update: u}
}
