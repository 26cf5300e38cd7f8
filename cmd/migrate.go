// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/sales-leaderboard/migrations"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var errPendingMigrations = errors.New("migrations are pending")

type migrateFlags struct {
	dsn    string
	format string
}

var migrateOpts migrateFlags

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down [version]|status|check]",
	Short: "Manage the leaderboard database schema",
	Long: `Apply or inspect the embedded schema migrations (companies, users, campaigns,
participants, sales and invitations).

  up              apply every pending migration (default)
  down [version]  roll back the last migration, or down to version
  status          list migrations and when they were applied
  check           fail when migrations are pending, for deploy gates`,
	Args: migrateArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := migrateOpts.dsn
		if dsn == "" {
			dsn = os.Getenv("DSN")
		}

		if dsn == "" {
			return errors.New("a DSN is required, use --dsn or the DSN environment variable")
		}

		if migrateOpts.format != formatText && migrateOpts.format != formatJSON {
			return fmt.Errorf("unknown output format %q", migrateOpts.format)
		}

		config, err := pgx.ParseConfig(dsn)
		if err != nil {
			return fmt.Errorf("invalid DSN: %w", err)
		}

		db := stdlib.OpenDB(*config)
		defer db.Close()

		ctx := cmd.Context()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}

		var opts []goose.ProviderOption
		if migrateOpts.format == formatJSON {
			opts = append(opts, goose.WithLogger(goose.NopLogger()))
		}

		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
		if err != nil {
			return fmt.Errorf("failed to create goose provider: %w", err)
		}

		m := newSchemaMigrator(provider, migrateOpts.format, cmd.OutOrStdout())

		return m.run(ctx, args)
	},
}

// migrateArgs accepts nothing, a single action or "down <version>"
func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "down", "status", "check":
	default:
		return fmt.Errorf("unknown migrate action %q", args[0])
	}

	if len(args) == 2 {
		if args[0] != "down" {
			return fmt.Errorf("only down takes a version, got %q", args)
		}

		if _, err := parseVersion(args[1]); err != nil {
			return err
		}
	}

	return nil
}

func parseVersion(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid version number %q", s)
	}

	return v, nil
}

// schemaMigrator runs one migrate action and reports it as text or JSON
type schemaMigrator struct {
	provider *goose.Provider
	format   string
	out      io.Writer
}

func newSchemaMigrator(provider *goose.Provider, format string, out io.Writer) *schemaMigrator {
	m := new(schemaMigrator)

	m.provider = provider
	m.format = format
	m.out = out

	return m
}

func (m *schemaMigrator) run(ctx context.Context, args []string) error {
	action := "up"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "down":
		if len(args) == 2 {
			version, err := parseVersion(args[1])
			if err != nil {
				return err
			}
			return m.downTo(ctx, version)
		}
		return m.down(ctx)
	case "status":
		return m.status(ctx)
	case "check":
		return m.check(ctx)
	default:
		return m.up(ctx)
	}
}

func (m *schemaMigrator) up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return err
	}

	return m.report(results)
}

func (m *schemaMigrator) down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return err
	}

	return m.report([]*goose.MigrationResult{result})
}

func (m *schemaMigrator) downTo(ctx context.Context, version int64) error {
	results, err := m.provider.DownTo(ctx, version)
	if err != nil {
		return err
	}

	return m.report(results)
}

func (m *schemaMigrator) report(results []*goose.MigrationResult) error {
	if m.format == formatJSON {
		if results == nil {
			results = []*goose.MigrationResult{}
		}
		return json.NewEncoder(m.out).Encode(map[string]any{"applied": results})
	}

	if len(results) == 0 {
		fmt.Fprintln(m.out, "schema already up to date")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(m.out, "%-6s %s (%s)\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond))
	}

	return nil
}

func (m *schemaMigrator) status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return err
	}

	if m.format == formatJSON {
		return json.NewEncoder(m.out).Encode(statuses)
	}

	w := tabwriter.NewWriter(m.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tAPPLIED AT\tMIGRATION")

	for _, s := range statuses {
		appliedAt := "pending"
		if s.State == goose.StateApplied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Source.Version, appliedAt, s.Source.Path)
	}

	return w.Flush()
}

// check exits non zero while migrations are pending
func (m *schemaMigrator) check(ctx context.Context) error {
	pending, err := m.provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if m.format == formatJSON {
		state := "ok"
		if pending {
			state = "pending"
		}
		if err := json.NewEncoder(m.out).Encode(map[string]any{"status": state, "version": current}); err != nil {
			return err
		}
	} else if !pending {
		fmt.Fprintf(m.out, "schema up to date at version %d\n", current)
	}

	if pending {
		return fmt.Errorf("%w: schema at version %d", errPendingMigrations, current)
	}

	return nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateOpts.dsn, "dsn", "", "PostgreSQL DSN connection string, defaults to $DSN")
	migrateCmd.Flags().StringVarP(&migrateOpts.format, "format", "f", formatText, "Output format (text or json)")

	rootCmd.AddCommand(migrateCmd)
}
