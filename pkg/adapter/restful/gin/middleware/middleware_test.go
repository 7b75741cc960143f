// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/restful/gin/middleware"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = &model.Caller{UserID: uuid.New(), Username: "alice"}

func newEngine(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m, err := middleware.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	e := gin.New()
	e.Use(m.Handler())
	e.GET("/metrics", m.Expose())
	authn := func(_ context.Context, tkn string) (*model.Caller, error) {
		switch tkn {
		case "good":
			return alice, nil
		case "broken":
			return nil, errors.New("token store is down")
		default:
			return nil, cerr.Authentication(model.ErrInvalidToken)
		}
	}
	e.GET("/whoami", middleware.Auth(authn), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.Caller(c).Username)
	})
	audited := e.Group("/audited", middleware.Auth(authn), middleware.Audit())
	audited.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	audited.DELETE("", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return e
}

func get(e *gin.Engine, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	e := newEngine(t)
	cases := []struct {
		authz  string
		status int
	}{
		{"Bearer good", http.StatusOK},
		{"bearer  good", http.StatusOK},
		{"", http.StatusUnauthorized},
		{"Bearer", http.StatusUnauthorized},
		{"Basic good", http.StatusUnauthorized},
		{"Bearer forged", http.StatusUnauthorized},
		{"Bearer broken", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := get(e, "/whoami", tc.authz)
		assert.Equal(t, tc.status, w.Code, "authorization %q", tc.authz)
		if tc.status == http.StatusOK {
			assert.Equal(t, "alice", w.Body.String())
		}
	}
	w := get(e, "/whoami", "Bearer broken")
	assert.NotContains(t, w.Body.String(), "token store")
}

func TestMetrics(t *testing.T) {
	e := newEngine(t)
	get(e, "/whoami", "Bearer good")
	get(e, "/whoami", "")
	get(e, "/whoami", "")
	get(e, "/nowhere", "")

	w := get(e, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body,
		`catweb_http_requests_total{method="GET",route="/whoami",status="200"} 1`)
	assert.Contains(t, body,
		`catweb_http_requests_total{method="GET",route="/whoami",status="401"} 2`)
	assert.Contains(t, body,
		`catweb_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, `catweb_request_errors_total{kind="authentication"} 2`)
	assert.Contains(t, body, "process_")
}

func TestNewMetricsRequiresRegistry(t *testing.T) {
	_, err := middleware.NewMetrics(nil)
	assert.Error(t, err)
}

func TestAudit(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var buf bytes.Buffer
	require.NoError(t, log.Setup(&buf, "info", "json"))
	e := newEngine(t)

	w := get(e, "/audited", "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String(), "reads are not audited")

	req := httptest.NewRequest(http.MethodDelete, "/audited", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	out := buf.String()
	assert.Contains(t, out, `"msg":"mutation is handled"`)
	assert.Contains(t, out, `"user-id":"`+alice.UserID.String()+`"`)
	assert.Contains(t, out, `"username":"alice"`)
	assert.Contains(t, out, `"status":204`)
}
