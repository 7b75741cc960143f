// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by all resources packages, including the
// request binding, the error responses, and the dates format.
package serdser

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
)

// DateLayout is the layout of dates which are given without a time.
// Such dates are taken as midnight UTC.
const DateLayout = time.DateOnly

// Bind binds the request into req using the b binding and validates
// it. Validation errors are written as a map from field names to their
// error messages with a 400 status code. Bind returns true if the
// request is bound successfully, otherwise, the response is written
// and caller should return.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		SerErr(c, cerr.Internal(err))
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		_ = c.Error(cerr.BadRequest(err))
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		SerErr(c, cerr.BadRequest(err))
	}
	return false
}

// AddErr appends msgs to the error messages of the name field.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// SerErr writes err as a JSON body with its kind and detail, using the
// HTTP status code of the wrapped cerr.Error. Errors which are not
// classified are logged and reported as internal errors without their
// details. The err is also attached to the gin context, so middlewares
// may observe it.
func SerErr(c *gin.Context, err error) {
	_ = c.Error(err)
	var ce *cerr.Error
	if !errors.As(err, &ce) || ce.Kind == cerr.KindInternal {
		log.Error(
			c, "request failed",
			log.Err("err", err), log.Stringer("url", c.Request.URL),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"kind":   cerr.KindInternal.String(),
			"detail": "internal server error",
		})
		return
	}
	c.JSON(ce.HTTPStatusCode, gin.H{
		"kind":   ce.Kind.String(),
		"detail": ce.Err.Error(),
	})
}

// ParseDate parses s as an RFC 3339 date-time or a YYYY-MM-DD date
// (taken as midnight UTC).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"date %q is neither RFC 3339 nor YYYY-MM-DD", s,
		)
	}
	return t, nil
}

// Date is a JSON decodable date which accepts the ParseDate formats.
type Date struct {
	time.Time
}

// UnmarshalJSON decodes a JSON string using ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// CatwayRef is a path parameter which refers to a catway either by
// its UUID or by its number. Exactly one of its fields is set.
type CatwayRef struct {
	Number int
	ID     uuid.UUID
}

// ParseCatwayRef parses the s path parameter as a positive catway
// number or a catway UUID. Other values are reported as a
// cerr.BadRequest error.
func ParseCatwayRef(s string) (CatwayRef, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return CatwayRef{}, cerr.BadRequest(fmt.Errorf(
				"catway number must be positive: %d", n,
			))
		}
		return CatwayRef{Number: n}, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return CatwayRef{}, cerr.BadRequest(fmt.Errorf(
			"catway %q is neither a number nor a UUID", s,
		))
	}
	return CatwayRef{ID: id}, nil
}

// ParseCatwayNumber parses the s path parameter as a positive catway
// number, reporting other values as a cerr.BadRequest error.
func ParseCatwayNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, cerr.BadRequest(fmt.Errorf(
			"catway number %q is not a positive integer", s,
		))
	}
	return n, nil
}

// ParseID parses the name path parameter value s as a UUID, reporting
// an invalid value as a cerr.BadRequest error.
func ParseID(name, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, cerr.BadRequest(fmt.Errorf(
			"path param %s is not a UUID: %q", name, s,
		))
	}
	return id, nil
}
