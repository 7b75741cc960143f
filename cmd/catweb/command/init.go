// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

const schemaMessage = `
If database schema version X.Y.Z is asked in the config file, relevant
tables of the latest known X.Y'.Z' version will be created in the
catwebX schema. An existing catwebX schema is dropped with all of its
contents beforehand.`

// Development user account which is created by init-dev if a
// password is given.
const (
	devUsername = "dev"
	devEmail    = "dev@catweb.local"
)

var devPassword string

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data
for the database schema version which is specified in the configuration
file. Sample catways and reservations are inserted. If --dev-password
is given, a "` + devUsername + `" user with the "` + devEmail + `" email
is created too (requiring the CATWEB_JWT_SECRET environment variable).
` + credsRenewalMessage + schemaMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data
for the database schema version which is specified in the configuration
file. Tables are left empty, so catways may be imported or created and
users may be added by the "user add" command.
` + credsRenewalMessage + schemaMessage,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = migrationuc.NewInitDB(c).InitDev(ctx); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	if devPassword == "" {
		return nil
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	users, err := c.NewUsersUseCase(p, c.Repos())
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}
	u, err := users.Create(ctx, devUsername, devEmail, devPassword)
	if err != nil {
		return fmt.Errorf("creating dev user: %w", err)
	}
	log.Info(ctx, "dev user is ready", log.Stringer("id", u.ID))
	return nil
}

func initProd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = migrationuc.NewInitDB(c).InitProd(ctx); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func init() {
	initDevCmd.Flags().StringVar(
		&devPassword, "dev-password", "", "password of the dev user",
	)
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
}
