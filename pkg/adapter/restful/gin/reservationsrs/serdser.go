// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/model"
)

type rawCreateReservationReq struct {
	ClientName string        `json:"clientName" binding:"required"`
	BoatName   string        `json:"boatName" binding:"required"`
	StartDate  *serdser.Date `json:"startDate" binding:"required"`
	EndDate    *serdser.Date `json:"endDate" binding:"required"`
}

type createReservationReq struct {
	CatwayNumber int
	ClientName   string
	BoatName     string
	StartDate    time.Time
	EndDate      time.Time
}

type rawUpdateReservationReq struct {
	ClientName *string       `json:"clientName" binding:"omitempty,min=1"`
	BoatName   *string       `json:"boatName" binding:"omitempty,min=1"`
	StartDate  *serdser.Date `json:"startDate"`
	EndDate    *serdser.Date `json:"endDate"`
}

type reservationRef struct {
	CatwayNumber int
	ID           uuid.UUID
}

type updateReservationReq struct {
	reservationRef
	Update model.ReservationUpdate
}

func (rs *resource) DserCreateReservationReq(
	c *gin.Context,
) *createReservationReq {
	number, err := serdser.ParseCatwayNumber(c.Param("catway"))
	if err != nil {
		serdser.SerErr(c, err)
		return nil
	}
	req := &rawCreateReservationReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &createReservationReq{
		CatwayNumber: number,
		ClientName:   req.ClientName,
		BoatName:     req.BoatName,
		StartDate:    req.StartDate.Time,
		EndDate:      req.EndDate.Time,
	}
}

func (rs *resource) DserReservationRef(c *gin.Context) *reservationRef {
	number, err := serdser.ParseCatwayNumber(c.Param("catway"))
	if err != nil {
		serdser.SerErr(c, err)
		return nil
	}
	id, err := serdser.ParseID("rid", c.Param("rid"))
	if err != nil {
		serdser.SerErr(c, err)
		return nil
	}
	return &reservationRef{CatwayNumber: number, ID: id}
}

func (rs *resource) DserUpdateReservationReq(
	c *gin.Context,
) *updateReservationReq {
	ref := rs.DserReservationRef(c)
	if ref == nil {
		return nil
	}
	req := &rawUpdateReservationReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	u := model.ReservationUpdate{}
	if req.ClientName != nil {
		u.ClientName = model.Some(*req.ClientName)
	}
	if req.BoatName != nil {
		u.BoatName = model.Some(*req.BoatName)
	}
	if req.StartDate != nil {
		u.StartDate = model.Some(req.StartDate.Time)
	}
	if req.EndDate != nil {
		u.EndDate = model.Some(req.EndDate.Time)
	}
	return &updateReservationReq{reservationRef: *ref, Update: u}
}
