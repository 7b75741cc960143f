// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine construction, so the config
// layer may choose its middlewares without depending on gin-gonic
// directly.
package gin

import (
	"fmt"
	"log/slog"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New instantiates an engine which uses the given middlewares, without
// the default gin-gonic middlewares.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns an access logging middleware which writes one record
// per request using the default slog logger.
func Logger() HandlerFunc {
	return ginslog.New(slog.Default())
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// SetMode switches gin-gonic to the debug, release, or test mode.
// An empty mode keeps the current mode.
func SetMode(mode string) error {
	switch mode {
	case "":
		return nil
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
		return nil
	default:
		return fmt.Errorf("unsupported gin mode: %q", mode)
	}
}
