// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsrs realizes the reservations resource, allowing
// the reservations REST APIs to be accepted and delegated to the
// reservations use cases respectively.
package reservationsrs

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
)

type resource struct {
	reservations func() *reservationsuc.UseCase
}

// Register instantiates a resource adapting the reservations use case
// with the relevant REST APIs including:
//  1. POST and GET requests to /catways/:catway/reservations in order
//     to reserve a catway or list its reservations,
//  2. GET, PUT, and DELETE requests to
//     /catways/:catway/reservations/:rid in order to fetch, update, or
//     cancel a reservation of that catway,
//  3. GET request to /reservations in order to list all reservations.
//
// The :catway path parameter must be a catway number.
func Register(
	r *gin.RouterGroup, reservations func() *reservationsuc.UseCase,
) {
	rs := &resource{reservations: reservations}
	r.POST("catways/:catway/reservations", rs.CreateReservation)
	r.GET("catways/:catway/reservations", rs.ListCatwayReservations)
	r.GET("catways/:catway/reservations/:rid", rs.GetReservation)
	r.PUT("catways/:catway/reservations/:rid", rs.UpdateReservation)
	r.DELETE("catways/:catway/reservations/:rid", rs.DeleteReservation)
	r.GET("reservations", rs.ListReservations)
}

func (rs *resource) CreateReservation(c *gin.Context) {
	req := rs.DserCreateReservationReq(c)
	if req == nil {
		return
	}
	r, err := rs.reservations().Create(
		c, req.CatwayNumber, req.ClientName, req.BoatName,
		req.StartDate, req.EndDate,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (rs *resource) ListCatwayReservations(c *gin.Context) {
	number, err := serdser.ParseCatwayNumber(c.Param("catway"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	list, err := rs.reservations().ListByCatway(c, number)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serList(c, list)
}

func (rs *resource) ListReservations(c *gin.Context) {
	list, err := rs.reservations().List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serList(c, list)
}

func serList(c *gin.Context, list []*model.Reservation) {
	if list == nil {
		list = []*model.Reservation{}
	}
	c.JSON(http.StatusOK, list)
}

func (rs *resource) GetReservation(c *gin.Context) {
	ref := rs.DserReservationRef(c)
	if ref == nil {
		return
	}
	r, err := rs.reservations().Get(c, ref.CatwayNumber, ref.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rs *resource) UpdateReservation(c *gin.Context) {
	req := rs.DserUpdateReservationReq(c)
	if req == nil {
		return
	}
	r, err := rs.reservations().Update(
		c, req.CatwayNumber, req.ID, req.Update,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rs *resource) DeleteReservation(c *gin.Context) {
	ref := rs.DserReservationRef(c)
	if ref == nil {
		return
	}
	err := rs.reservations().Delete(c, ref.CatwayNumber, ref.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detail": fmt.Sprintf(
			"reservation %s of catway %d is deleted",
			ref.ID, ref.CatwayNumber,
		),
	})
}
