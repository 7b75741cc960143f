// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User accounts management actions",
}

var userAddCmd = &cobra.Command{
	Use:   "add USERNAME EMAIL",
	Short: "Create a user account",
	Long: `Create a user account which may log in to the REST API.
The password is read from the first line of the standard input, so it
does not appear in the command line arguments.
The CATWEB_JWT_SECRET environment variable must be set.`,
	RunE: addUser,
	Args: cobra.ExactArgs(2),
}

func addUser(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && password == "" {
		return fmt.Errorf("reading password from stdin: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return errors.New("password is empty")
	}
	c, err := loadConfig()
	if err != nil {
		return err
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
	u, err := users.Create(ctx, args[0], args[1], password)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	log.Info(ctx, "user is added", log.Stringer("id", u.ID))
	fmt.Fprintln(cmd.OutOrStdout(), u.ID)
	return nil
}

func init() {
	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}
