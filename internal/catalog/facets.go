// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"slices"
	"strings"
)

// GenreFacet is one genre option with the number of records carrying it.
type GenreFacet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets summarizes the full record set for building filter controls.
type Facets struct {
	Genres   []GenreFacet `json:"genres"`
	MinPrice float64      `json:"min_price"`
	MaxPrice float64      `json:"max_price"`
	Bands    Bands        `json:"bands"`
}

// Facets collects genre options and the price range over all records.
// Genre fields listing several genres ("Action, Sci-Fi") count once per genre.
func (e *Engine) Facets() Facets {
	f := Facets{Genres: []GenreFacet{}, Bands: e.bands}
	counts := make(map[string]int)
	var names []string

	for i, r := range e.records {
		if i == 0 || r.Price < f.MinPrice {
			f.MinPrice = r.Price
		}
		if i == 0 || r.Price > f.MaxPrice {
			f.MaxPrice = r.Price
		}
		for _, g := range strings.Split(r.Genre, ",") {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if counts[g] == 0 {
				names = append(names, g)
			}
			counts[g]++
		}
	}

	slices.SortFunc(names, e.collator.CompareString)
	for _, n := range names {
		f.Genres = append(f.Genres, GenreFacet{Name: n, Count: counts[n]})
	}
	return f
}
