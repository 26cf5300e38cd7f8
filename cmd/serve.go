// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/sales-leaderboard/internal/config"
	"github.com/canonical/sales-leaderboard/internal/db"
	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring/prometheus"
	"github.com/canonical/sales-leaderboard/internal/scheduler"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
	"github.com/canonical/sales-leaderboard/pkg/web"
)

var envFiles []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load, real environment variables win")

	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs, err := config.Load(envFiles...)
	if err != nil {
		return err
	}

	logger := logging.NewLoggerWithFile(specs.LogLevel, specs.LogFile)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("sales-leaderboard", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var verifier authentication.TokenVerifierInterface
	if specs.AuthenticationEnabled {
		verifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			authentication.Config{
				Issuer:        specs.AuthenticationIssuer,
				JWKSURL:       specs.AuthenticationJWKSURL,
				RequiredScope: specs.AuthenticationRequiredScope,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up authentication: %w", err)
		}
	} else {
		verifier = authentication.NewNoopVerifier()
		logger.Info("Authentication is disabled, bearer tokens are taken as user ids")
	}

	hub := live.NewHub(specs.LiveBufferSize, tracer, monitor, logger)

	jobs, err := scheduler.NewScheduler(s, scheduler.DefaultPurgeInterval, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	router := web.NewRouter(
		web.Config{
			AllowedOrigins:     specs.AllowedOrigins,
			InvitationLifetime: specs.InvitationLifetime,
		},
		s,
		dbClient,
		hub,
		verifier,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()

	// hijacked websocket connections are not tracked by Shutdown, closing the
	// hub ends their streams
	hub.Close()

	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	if err := jobs.Shutdown(); err != nil {
		logger.Errorf("scheduler shutdown failed: %v", err)
	}

	return serverError
}
