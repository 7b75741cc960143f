// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"fmt"

	"github.com/momeni/catways/pkg/adapter/config/settings"
	"github.com/momeni/catways/pkg/adapter/restful/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing fields are replaced by false
// during the ValidateAndNormalize call.
type Gin struct {
	Logger   *bool // Whether to register the access logging middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
	Metrics  *bool // Whether to collect and expose Prometheus metrics

	// Mode is the gin-gonic mode, i.e., debug, release, or test.
	// An empty mode keeps the gin-gonic default mode.
	Mode string `yaml:"mode,omitempty"`
}

// ValidateAndNormalize replaces the missing boolean settings with
// false and validates the gin-gonic mode.
func (g *Gin) ValidateAndNormalize() error {
	settings.Nil2Zero(&g.Logger)
	settings.Nil2Zero(&g.Recovery)
	settings.Nil2Zero(&g.Metrics)
	switch g.Mode {
	case "", "debug", "release", "test":
		return nil
	default:
		return fmt.Errorf("unsupported gin mode: %q", g.Mode)
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. If metrics are enabled, a fresh Prometheus
// registry is populated by the requests metrics and is exposed by the
// GET /metrics route.
func (g Gin) NewEngine() (*gin.Engine, error) {
	if err := gin.SetMode(g.Mode); err != nil {
		return nil, err
	}
	middlewares := make([]gin.HandlerFunc, 0, 3)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	var m *middleware.Metrics
	if *g.Metrics {
		var err error
		m, err = middleware.NewMetrics(prometheus.NewRegistry())
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}
		middlewares = append(middlewares, m.Handler())
	}
	e := gin.New(middlewares...)
	if m != nil {
		e.GET("/metrics", m.Expose())
	}
	return e, nil
}
