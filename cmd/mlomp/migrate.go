// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mlomp/internal/config"
	"mlomp/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or report database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}
		return withDB(cmd, func(ctx context.Context, _ *config.Config, db *sql.DB) error {
			switch direction {
			case "down":
				if err := database.Rollback(ctx, db); err != nil {
					return err
				}
			case "up":
				if err := database.Migrate(ctx, db); err != nil {
					return err
				}
			}
			v, err := database.Version(ctx, db)
			if err != nil {
				return err
			}
			slog.Info("database schema", "version", v)
			return nil
		})
	},
}

var seedSample bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and, with --sample, the built-in content",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, cfg *config.Config, db *sql.DB) error {
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			return database.Seed(ctx, db, adminFrom(cfg), seedSample)
		})
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedSample, "sample", false, "also load the sample commune content")
}

func adminFrom(cfg *config.Config) database.Admin {
	return database.Admin{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}
}

// withDB runs fn with a connected database.
func withDB(cmd *cobra.Command, fn func(context.Context, *config.Config, *sql.DB) error) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()
	return fn(ctx, cfg, db)
}
