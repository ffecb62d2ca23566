// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mlomp/internal/api"
	"mlomp/internal/auth"
	"mlomp/internal/database"
	"mlomp/internal/middleware"
	"mlomp/internal/router"
	"mlomp/internal/storage"
	"mlomp/internal/store"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the REST content API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.APIAddr())

		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		if cfg.IsDev() {
			if err := database.Seed(ctx, db, adminFrom(cfg), true); err != nil {
				return err
			}
		}

		var media api.MediaStore
		objects, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		switch {
		case err != nil:
			return fmt.Errorf("init storage: %w", err)
		case objects == nil:
			slog.Warn("s3 storage not configured, media uploads disabled")
		default:
			if err := objects.EnsureBucket(ctx); err != nil {
				return fmt.Errorf("ensure bucket: %w", err)
			}
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
			media = objects
		}

		issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
		limiter := middleware.NewRateLimiter(loginAttempts, loginWindow)
		defer limiter.Stop()

		r := router.NewAPI(router.API{
			Auth: api.NewAuth(store.NewUserStore(db), issuer),
			Collections: []api.Mountable{
				api.NewCollection(api.NewsEntity, store.NewNewsStore(db), media),
				api.NewCollection(api.ProjectEntity, store.NewProjectStore(db), media),
				api.NewCollection(api.ServiceEntity, store.NewServiceStore(db), media),
				api.NewCollection(api.ProcedureEntity, store.NewProcedureStore(db), media),
				api.NewCollection(api.InvestmentEntity, store.NewInvestmentStore(db), media),
				api.NewCollection(api.GalleryEntity, store.NewGalleryStore(db), media),
			},
			Verifier:  issuer,
			AuthLimit: limiter,
		})

		return serve("api", &http.Server{
			Addr:         cfg.APIAddr(),
			Handler:      r,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		})
	},
}
