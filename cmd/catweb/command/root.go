// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the catweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization and data
// import actions and the "user" sub-command manages user accounts.
//
//	./catweb [-c /path/of/config.yaml] [-l :8080]  # start web server
//	./catweb db init-dev [-c /path/of/config.yaml] [--dev-password P]
//	./catweb db init-prod [-c /path/of/config.yaml]
//	./catweb db import --catways catways.json \
//	    --reservations reservations.json [-c /path/of/config.yaml]
//	./catweb user add NAME EMAIL [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/catways/pkg/adapter/config"
	"github.com/momeni/catways/pkg/adapter/config/cfg1"
	"github.com/momeni/catways/pkg/adapter/restful/gin/routes"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/appuc"
	"github.com/spf13/cobra"
)

// shutdownTimeout is the time which in-flight requests are given in
// order to complete after a termination signal.
const shutdownTimeout = 10 * time.Second

var (
	cfgPath    string
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "catweb",
	Short: "A harbor catways and reservations manager",
	Long: `A harbor catways and reservations manager which keeps a
registry of catways (berths) and their reservations by boat owners.
It guarantees that no two reservations of the same catway overlap,
even when they are requested concurrently, and exposes the catways,
reservations, and user accounts through a JSON REST API which is
protected by bearer tokens.

The web server reloads its use cases settings from the configuration
file when it receives a SIGHUP signal. The database connection
settings are not reloaded.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	app, err := c.NewAppUseCase(p)
	if err != nil {
		return fmt.Errorf("creating application use case: %w", err)
	}
	e, err := c.Gin.NewEngine()
	if err != nil {
		return fmt.Errorf("creating Gin engine: %w", err)
	}
	if err = routes.Register(e, app); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	go reloadOnHangup(ctx, app)

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	log.Info(ctx, "web server is started", slog.String("addr", listenAddr))
	select {
	case err = <-errs:
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "web server is shutting down")
	sctx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err = <-errs; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

// reloadOnHangup reloads the configuration file and the app use cases
// whenever a SIGHUP signal is received, until ctx is done.
func reloadOnHangup(ctx context.Context, app *appuc.UseCase) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
		}
		c, err := config.Load(cfgPath)
		if err != nil {
			log.Error(
				ctx, "cannot reload config file",
				slog.String("path", cfgPath), log.Err("err", err),
			)
			continue
		}
		if err = app.Reload(ctx, c); err != nil {
			log.Error(ctx, "cannot reload use cases", log.Err("err", err))
		}
	}
}

// loadConfig loads the configuration file from cfgPath and sets up
// the default logger based on its settings.
func loadConfig() (*cfg1.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Log.SetupLogger(); err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// non-zero if the command fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.Flags().StringVarP(
		&listenAddr, "listen", "l", ":8080", "HTTP listen address",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
