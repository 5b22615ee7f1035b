// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"cinesou/internal/catalog"
	"cinesou/internal/database"
)

// MovieStore manages the catalog table. It satisfies catalog.Loader.
type MovieStore struct {
	db *sql.DB
}

// NewMovieStore returns a new MovieStore.
func NewMovieStore(db *sql.DB) *MovieStore {
	return &MovieStore{db: db}
}

const movieColumns = `id, title, year, genre, director, rating, price, poster, description, featured`

// scanMovie scans a row into a catalog record.
func scanMovie(scanner interface{ Scan(...any) error }) (catalog.Record, error) {
	var r catalog.Record
	err := scanner.Scan(
		&r.ID, &r.Title, &r.Year, &r.Genre, &r.Director,
		&r.Rating, &r.Price, &r.Poster, &r.Description, &r.Featured,
	)
	return r, err
}

// Load returns every movie in catalog order.
func (s *MovieStore) Load(ctx context.Context) ([]catalog.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var items []catalog.Record
	for rows.Next() {
		r, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// FindByID returns a single movie, or (nil, nil) when it does not exist.
func (s *MovieStore) FindByID(ctx context.Context, id string) (*catalog.Record, error) {
	r, err := scanMovie(s.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find movie %q: %w", id, err)
	}
	return &r, nil
}

// Count returns the number of stored movies.
func (s *MovieStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// ReplaceAll swaps the whole catalog for records in one transaction.
// Duplicate IDs abort the import and leave the old catalog in place.
func (s *MovieStore) ReplaceAll(ctx context.Context, records []catalog.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	if err := database.InsertMovies(ctx, tx, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
