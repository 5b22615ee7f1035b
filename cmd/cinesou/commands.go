// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cinesou/internal/source"
	"cinesou/internal/storage"
	"cinesou/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("migrations applied")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <movies.xml>",
	Short: "Replace the movies table with the records of an XML catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := source.File{Path: args[0]}.Load(cmd.Context())
		if err != nil {
			return err
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.NewMovieStore(db).ReplaceAll(cmd.Context(), records); err != nil {
			return err
		}
		slog.Info("catalog imported", "file", args[0], "movies", len(records))
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <movies.xml>",
	Short: "Validate an XML catalog and upload it to object storage under CATALOG_KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, err := source.File{Path: path}.Load(cmd.Context())
		if err != nil {
			return err
		}

		client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("publish: S3 storage is not configured")
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}

		if err := client.Upload(cmd.Context(), client.Bucket(), cfg.CatalogKey, "application/xml", f, info.Size()); err != nil {
			return err
		}
		slog.Info("catalog published", "bucket", client.Bucket(), "key", cfg.CatalogKey, "movies", len(records))
		return nil
	},
}
