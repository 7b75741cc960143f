// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/momeni/catways/internal/test/dbcontainer"
	"github.com/momeni/catways/pkg/adapter/config/cfg1"
	"github.com/momeni/catways/pkg/adapter/config/vers"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
	"github.com/momeni/catways/pkg/adapter/hash/scram"
	"github.com/momeni/catways/pkg/adapter/restful/gin"
	"github.com/momeni/catways/pkg/adapter/restful/gin/routes"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/appuc"
	"github.com/momeni/catways/pkg/core/usecase/migrationuc"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx     context.Context
	Pg      *sqltestutil.PostgresContainer
	Pool    *postgres.Pool
	PassDir string

	Gin   *gin.Engine
	App   *appuc.UseCase
	Token string
	pool  repo.Pool
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	d, err := os.MkdirTemp("", "catweb-gin")
	if err != nil {
		t.Fatalf("creating temp pass dir: %v", err)
	}
	defer os.RemoveAll(d)
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:     ctx,
		Pg:      pg,
		Pool:    pool,
		PassDir: d,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	r := igts.Require()
	u, err := url.Parse(igts.Pg.ConnectionString())
	r.NoError(err, "parsing DB container URL")
	port, err := strconv.Atoi(u.Port())
	r.NoError(err, "parsing DB container port")

	const name = "catweb_gin"
	admin := repo.AdminRole + "_gin"
	b := make([]byte, 8)
	_, err = rand.Read(b)
	r.NoError(err, "generating a random password")
	pass := fmt.Sprintf("%x", b)
	hp, err := scram.SHA256().Hash(pass, "", 15000)
	r.NoError(err, "hashing admin password")
	err = igts.Pool.Conn(igts.Ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := c.Exec(ctx, "CREATE DATABASE "+name); err != nil {
			return err
		}
		_, err := c.Exec(ctx, fmt.Sprintf(
			`CREATE ROLE %s WITH SUPERUSER LOGIN PASSWORD '%s'`, admin, hp,
		))
		return err
	})
	r.NoError(err, "creating database and admin role")
	line := fmt.Sprintf("127.0.0.1:%d:%s:%s:%s\n", port, name, admin, pass)
	err = os.WriteFile(
		filepath.Join(igts.PassDir, ".pgpass"), []byte(line), 0o600,
	)
	r.NoError(err, "writing .pgpass")

	mode, cost := "test", 4
	c := &cfg1.Config{
		Database: cfg1.Database{
			Host:       "127.0.0.1",
			Port:       port,
			Name:       name,
			PassDir:    igts.PassDir,
			RoleSuffix: "_gin",
		},
		Gin: cfg1.Gin{Mode: mode},
		Auth: cfg1.Auth{
			JWTSecret:  strings.Repeat("g", 32),
			BcryptCost: &cost,
		},
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: postgres.Version,
				Config:   cfg1.Version,
			},
		},
	}
	r.NoError(c.ValidateAndNormalize(), "validating settings")
	r.NoError(
		migrationuc.NewInitDB(c).InitDev(igts.Ctx),
		"initializing the dev database",
	)

	igts.pool, err = c.ConnectionPool(igts.Ctx, repo.NormalRole)
	r.NoError(err, "connecting as the normal role")
	igts.App, err = c.NewAppUseCase(igts.pool)
	r.NoError(err, "creating the app use case")
	igts.Gin, err = c.Gin.NewEngine()
	r.NoError(err, "creating the gin engine")
	r.NoError(routes.Register(igts.Gin, igts.App), "registering routes")

	_, err = igts.App.UsersUseCase().Create(
		igts.Ctx, "dev", "dev@catweb.local", "dev-password",
	)
	r.NoError(err, "creating a user")
	w := igts.send(http.MethodPost, "/login", map[string]string{
		"email": "dev@catweb.local", "password": "dev-password",
	})
	r.Equal(http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	r.NoError(json.Unmarshal(w.Body.Bytes(), &login))
	igts.Token = login.Token
}

func (igts *IntegrationGinTestSuite) TearDownSuite() {
	if igts.pool != nil {
		igts.NoError(igts.pool.Close(), "closing the normal role pool")
	}
}

func (igts *IntegrationGinTestSuite) send(
	method, path string, body any,
) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		igts.Require().NoError(err, "encoding body")
	}
	req := httptest.NewRequest(
		method, routes.BasePath+path, strings.NewReader(string(data)),
	)
	req.Header.Set("Content-Type", "application/json")
	if igts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+igts.Token)
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	return w
}

func (igts *IntegrationGinTestSuite) TestDevCatways() {
	w := igts.send(http.MethodGet, "/catways", nil)
	igts.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var list []*model.Catway
	igts.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	igts.GreaterOrEqual(len(list), 5)
	igts.Equal(1, list[0].Number, "ordered by number")

	w = igts.send(http.MethodGet, "/catways/4", nil)
	igts.Require().Equal(http.StatusOK, w.Code)
	c := &model.Catway{}
	igts.Require().NoError(json.Unmarshal(w.Body.Bytes(), c))
	igts.Equal("planche cassée", c.State)
}

func (igts *IntegrationGinTestSuite) TestOverlapWithDevReservation() {
	w := igts.send(http.MethodPost, "/catways/1/reservations", map[string]string{
		"clientName": "Alice", "boatName": "Nautilus",
		"startDate": "2024-10-27", "endDate": "2024-11-02",
	})
	igts.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	igts.Contains(w.Body.String(), `"conflict"`)

	w = igts.send(http.MethodDelete, "/catways/2", nil)
	igts.Equal(http.StatusBadRequest, w.Code, "catway 2 has reservations")
}

func (igts *IntegrationGinTestSuite) TestConcurrentReservations() {
	const n = 8
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := igts.send(
				http.MethodPost, "/catways/5/reservations",
				map[string]string{
					"clientName": fmt.Sprintf("client %d", i),
					"boatName":   "Racer",
					"startDate":  "2031-03-01",
					"endDate":    "2031-03-04",
				},
			)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()
	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
		default:
			igts.Failf("unexpected status", "code=%d", code)
		}
	}
	igts.Equal(1, created, "exactly one reservation wins: %v", codes)
}
