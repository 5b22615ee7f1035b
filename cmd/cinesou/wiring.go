// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cinesou/internal/catalog"
	"cinesou/internal/config"
	"cinesou/internal/contact"
	"cinesou/internal/database"
	"cinesou/internal/events"
	"cinesou/internal/source"
	"cinesou/internal/storage"
	"cinesou/internal/store"
)

// openDB connects to PostgreSQL and applies pending migrations.
func openDB(c *config.Config) (*sql.DB, error) {
	db, err := database.Connect(c.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openStorage connects to S3-compatible storage. It returns nil when no
// credentials are configured.
func openStorage(c *config.Config) (*storage.Client, error) {
	client, err := storage.New(c.S3Endpoint, c.S3Region, c.S3AccessKey, c.S3SecretKey, c.S3Bucket, c.S3PublicURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		slog.Warn("s3 storage not configured, posters served as stored")
		return nil, nil
	}
	slog.Info("s3 storage connected", "endpoint", c.S3Endpoint, "bucket", client.Bucket())
	return client, nil
}

// catalogLoader picks the catalog source named by CATALOG_SOURCE.
func catalogLoader(c *config.Config, db *sql.DB, objects *storage.Client) (catalog.Loader, error) {
	switch c.CatalogSource {
	case config.SourceFile:
		return source.File{Path: c.CatalogPath}, nil
	case config.SourceHTTP:
		return source.HTTP{URL: c.CatalogURL, Client: &http.Client{Timeout: 15 * time.Second}}, nil
	case config.SourceS3:
		if objects == nil {
			return nil, fmt.Errorf("CATALOG_SOURCE is s3 but S3 storage is not configured")
		}
		return source.S3{Objects: objects, Bucket: objects.Bucket(), Key: c.CatalogKey}, nil
	case config.SourceDB:
		return store.NewMovieStore(db), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", c.CatalogSource)
}

// contactSubmitter picks where accepted contact forms go. When a broker is
// configured, database submissions also publish contact.received.
func contactSubmitter(c *config.Config, db *sql.DB, publisher *events.Publisher) contact.Submitter {
	switch c.ContactSubmitter {
	case config.SubmitterDB:
		if publisher != nil {
			return contact.Chain{store.NewContactStore(db), publisher}
		}
		return store.NewContactStore(db)
	case config.SubmitterAMQP:
		return publisher
	}
	return contact.Simulated{Delay: contact.SimulatedDelay}
}

// loadBands reads the band tables from BANDS_FILE, or the defaults.
func loadBands(c *config.Config) (catalog.Bands, error) {
	if c.BandsFile == "" {
		return catalog.DefaultBands(), nil
	}
	bands, err := catalog.LoadBandsFile(c.BandsFile)
	if err != nil {
		return catalog.Bands{}, err
	}
	slog.Info("filter bands loaded", "file", c.BandsFile, "price", len(bands.Price), "year", len(bands.Year))
	return bands, nil
}
