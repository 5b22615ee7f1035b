// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
)

// Record is one movie in the catalog. Records are immutable once loaded.
type Record struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Director    string  `json:"director"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
	Poster      string  `json:"poster"`
	Description string  `json:"description"`
	Featured    bool    `json:"featured"`
}

// DisplayRecord is the subset of a Record a grid or slider card shows.
type DisplayRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Price  string `json:"price"`
	Poster string `json:"poster"`
}

// Display projects the record onto its card fields.
func (r Record) Display() DisplayRecord {
	return DisplayRecord{
		ID:     r.ID,
		Title:  r.Title,
		Year:   r.Year,
		Genre:  r.Genre,
		Price:  FormatPrice(r.Price),
		Poster: r.Poster,
	}
}

// FormatPrice renders a price with two decimals, e.g. 9.99 or 15.00.
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// Loader supplies the full ordered record set. Implementations live in
// the source and store packages.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]Record, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) ([]Record, error) {
	return f(ctx)
}
