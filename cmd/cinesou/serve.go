// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cinesou/internal/cache"
	"cinesou/internal/catalog"
	"cinesou/internal/config"
	"cinesou/internal/database"
	"cinesou/internal/events"
	"cinesou/internal/handlers"
	"cinesou/internal/middleware"
	"cinesou/internal/purchase"
	"cinesou/internal/router"
	"cinesou/internal/session"
	"cinesou/internal/source"
	"cinesou/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront API (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"catalog_source", cfg.CatalogSource,
		"contact_submitter", cfg.ContactSubmitter,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// PostgreSQL is only needed for the db catalog source or db submitter.
	var db *sql.DB
	if cfg.NeedsDB() {
		var err error
		if db, err = openDB(cfg); err != nil {
			return err
		}
		defer db.Close()

		if cfg.IsDev() && cfg.CatalogSource == config.SourceDB {
			if err := database.Seed(ctx, db, source.File{Path: cfg.CatalogPath}); err != nil {
				slog.Warn("catalog seed skipped", "error", err)
			}
		}
	}

	// Valkey holds visitor theme preferences and cached catalog responses.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	objects, err := openStorage(cfg)
	if err != nil {
		return err
	}

	bands, err := loadBands(cfg)
	if err != nil {
		return err
	}
	loader, err := catalogLoader(cfg, db, objects)
	if err != nil {
		return err
	}

	// A failed first load is not fatal: the API answers 503 with the load
	// failure message until a reload succeeds.
	library := catalog.NewLibrary(loader, cfg.PageSize, bands)
	_ = library.Reload(ctx)

	responses := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	if cfg.CatalogWatch && cfg.CatalogSource == config.SourceFile {
		w, err := watch.New(cfg.CatalogPath, watch.DefaultQuiet, func(ctx context.Context) {
			if err := library.Reload(ctx); err == nil {
				responses.InvalidateAll(ctx)
			}
		})
		if err != nil {
			return err
		}
		go w.Run(ctx)
		slog.Info("watching catalog asset", "path", cfg.CatalogPath)
	}

	publisher := events.NewPublisher(cfg.AMQPURL)
	var notifier purchase.Notifier
	if publisher != nil {
		notifier = publisher
	}

	var posters handlers.PosterResolver
	if objects != nil {
		posters = objects
	}

	sessions := session.NewStore(valkeyClient)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
	defer limiter.Stop()

	secureCookies := !cfg.IsDev()
	r := router.New(secureCookies, limiter,
		handlers.NewCatalog(library, posters, responses),
		handlers.NewPurchase(purchase.NewService(library, notifier), library),
		handlers.NewTheme(sessions.Theme),
		handlers.NewContact(contactSubmitter(cfg, db, publisher)),
	)

	// WriteTimeout covers the simulated contact submission delay.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
