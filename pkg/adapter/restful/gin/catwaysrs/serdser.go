// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package catwaysrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
)

type rawCreateCatwayReq struct {
	Number int    `json:"catwayNumber" binding:"required,gt=0"`
	Type   string `json:"catwayType" binding:"required,oneof=short long"`
	State  string `json:"catwayState" binding:"required"`
}

type createCatwayReq struct {
	Number int
	Type   model.BerthType
	State  string
}

type rawUpdateCatwayReq struct {
	Number *int    `json:"catwayNumber" binding:"omitempty,gt=0"`
	Type   *string `json:"catwayType" binding:"omitempty,oneof=short long"`
	State  *string `json:"catwayState" binding:"omitempty,min=1"`
}

func (rs *resource) DserCreateCatwayReq(c *gin.Context) *createCatwayReq {
	req := &rawCreateCatwayReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	bt, err := model.ParseBerthType(req.Type)
	if err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil
	}
	return &createCatwayReq{Number: req.Number, Type: bt, State: req.State}
}

func (rs *resource) DserUpdateCatwayReq(c *gin.Context) *model.CatwayUpdate {
	req := &rawUpdateCatwayReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	u := &model.CatwayUpdate{}
	if req.Number != nil {
		u.Number = model.Some(*req.Number)
	}
	if req.Type != nil {
		bt, err := model.ParseBerthType(*req.Type)
		if err != nil {
			serdser.SerErr(c, cerr.BadRequest(err))
			return nil
		}
		u.Type = model.Some(bt)
	}
	if req.State != nil {
		u.State = model.Some(*req.State)
	}
	return u
}
