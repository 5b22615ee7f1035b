// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"cinesou/internal/catalog"
)

// Seed fills an empty movies table from loader, typically the bundled
// XML asset. A table that already has rows is left alone.
func Seed(ctx context.Context, db *sql.DB, loader catalog.Loader) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return fmt.Errorf("seed check movies: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping", "movies", count)
		return nil
	}

	records, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("seed load catalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	if err := InsertMovies(ctx, tx, records); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with catalog", "movies", len(records))
	return nil
}

// InsertMovies writes records in order inside tx. Positions follow the
// slice order so reads can restore the original sequence.
func InsertMovies(ctx context.Context, tx *sql.Tx, records []catalog.Record) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (id, position, title, year, genre, director, rating, price, poster, description, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert movie: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.ID, i, r.Title, r.Year, r.Genre, r.Director,
			r.Rating, r.Price, r.Poster, r.Description, r.Featured,
		)
		if err != nil {
			return fmt.Errorf("insert movie %q: %w", r.ID, err)
		}
	}
	return nil
}
