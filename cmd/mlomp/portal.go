// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mlomp/internal/cache"
	"mlomp/internal/client"
	"mlomp/internal/content"
	"mlomp/internal/handlers"
	"mlomp/internal/middleware"
	"mlomp/internal/render"
	"mlomp/internal/router"
	"mlomp/internal/session"
	"mlomp/web"
)

const (
	// tokenCheckInterval is how often a session's API token is re-verified.
	tokenCheckInterval = 5 * time.Minute
	loginAttempts      = 10
	loginWindow        = 15 * time.Minute
)

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Serve the public site and the back-office",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "api", cfg.APIURL)

		valkey, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer valkey.Close()

		sessions := session.NewStore(valkey, cfg.SessionTTL, cfg.IsProd())
		pages := cache.NewPageCache(valkey, cfg.PageCacheTTL)

		renderer, err := render.New(cfg.IsDev())
		if err != nil {
			return fmt.Errorf("init renderer: %w", err)
		}

		apiClient := client.New(cfg.APIURL,
			client.WithToken(session.Token),
			client.WithTimeout(cfg.APITimeout),
		)
		services := content.NewServices(apiClient)

		static, err := fs.Sub(web.StaticFS, "static")
		if err != nil {
			return fmt.Errorf("static assets: %w", err)
		}

		limiter := middleware.NewRateLimiter(loginAttempts, loginWindow)
		defer limiter.Stop()

		r := router.NewPortal(router.Portal{
			Sessions:       sessions,
			Verifier:       services.Auth,
			Admin:          handlers.NewAdmin(renderer, services, pages),
			Auth:           handlers.NewAuth(renderer, sessions, services.Auth),
			Public:         handlers.NewPublic(renderer, services, pages),
			Static:         static,
			LoginLimit:     limiter,
			VerifyInterval: tokenCheckInterval,
			Secure:         cfg.IsProd(),
		})

		return serve("portal", &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		})
	},
}
