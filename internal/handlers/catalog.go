// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinesou/internal/cache"
	"cinesou/internal/catalog"
	"cinesou/internal/markdown"
)

// LoadFailureMessage is shown in place of the grid when the catalog could
// not be loaded.
const LoadFailureMessage = "Failed to load movies. Please try again later."

// PosterResolver turns a stored poster reference into a public URL.
// *storage.Client satisfies it.
type PosterResolver interface {
	PosterURL(poster string) string
}

// Catalog serves the movie grid, the featured slider, movie details and
// filter metadata. Every request gets a private engine from the shared
// library, so criteria never leak between visitors.
type Catalog struct {
	library *catalog.Library
	posters PosterResolver
	cache   *cache.ResponseCache
}

// NewCatalog creates the catalog handler group. posters and responses may
// be nil when S3 or Valkey are not configured.
func NewCatalog(library *catalog.Library, posters PosterResolver, responses *cache.ResponseCache) *Catalog {
	return &Catalog{library: library, posters: posters, cache: responses}
}

type movieList struct {
	catalog.Page
	Summary    string         `json:"summary"`
	Pagination catalog.Window `json:"pagination"`
}

type movieDetail struct {
	catalog.Record
	DescriptionHTML string `json:"description_html"`
}

type featuredList struct {
	Items    []catalog.DisplayRecord `json:"items"`
	Index    int                     `json:"index"`
	MaxIndex int                     `json:"max_index"`
	Offset   int                     `json:"offset"`
	CanPrev  bool                    `json:"can_prev"`
	CanNext  bool                    `json:"can_next"`
	Visible  int                     `json:"visible"`
}

// List applies search, filters, sort and page from the query string and
// returns one page of the grid with its pagination window.
func (c *Catalog) List(w http.ResponseWriter, r *http.Request) {
	c.serveCached(w, r, "movies", func(e *catalog.Engine) (any, error) {
		q := r.URL.Query()
		e.SetSearchTerm(q.Get("q"))
		err := e.SetFilters(catalog.Filter{
			Genre:     q.Get("genre"),
			PriceBand: q.Get("price"),
			YearBand:  q.Get("year"),
		})
		if err != nil {
			return nil, err
		}
		e.SetSort(catalog.ParseSortKey(q.Get("sort")))
		if raw := q.Get("page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: page %q", errBadRequest, raw)
			}
			e.SetPage(n)
		}

		page := e.Page()
		c.resolvePosters(page.Items)
		return movieList{
			Page:       page,
			Summary:    page.Summary(),
			Pagination: e.Pagination(),
		}, nil
	})
}

// Featured returns the featured records and the slider position for the
// requested index.
func (c *Catalog) Featured(w http.ResponseWriter, r *http.Request) {
	c.serveCached(w, r, "featured", func(e *catalog.Engine) (any, error) {
		featured := e.Featured()
		items := make([]catalog.DisplayRecord, len(featured))
		for i, rec := range featured {
			items[i] = rec.Display()
		}
		c.resolvePosters(items)

		s := catalog.NewSlider(len(items))
		if raw := r.URL.Query().Get("index"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: index %q", errBadRequest, raw)
			}
			s.SetIndex(n)
		}
		return featuredList{
			Items:    items,
			Index:    s.Index(),
			MaxIndex: s.MaxIndex(),
			Offset:   s.Offset(),
			CanPrev:  s.CanPrev(),
			CanNext:  s.CanNext(),
			Visible:  catalog.SliderVisible,
		}, nil
	})
}

// Facets returns genre options, the price range and the band tables.
func (c *Catalog) Facets(w http.ResponseWriter, r *http.Request) {
	c.serveCached(w, r, "facets", func(e *catalog.Engine) (any, error) {
		return e.Facets(), nil
	})
}

// Movie returns one record with its description rendered to HTML.
func (c *Catalog) Movie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, ok := c.library.Find(id)
	if !ok {
		if err := unavailable(c.library); err != nil {
			slog.Error("movie lookup without catalog", "id", id, "error", err)
			writeError(w, http.StatusServiceUnavailable, LoadFailureMessage)
			return
		}
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}

	if c.posters != nil {
		rec.Poster = c.posters.PosterURL(rec.Poster)
	}
	html, err := markdown.ToHTML(rec.Description)
	if err != nil {
		slog.Warn("render description failed", "id", id, "error", err)
	}
	writeJSON(w, http.StatusOK, movieDetail{Record: rec, DescriptionHTML: html})
}

// serveCached answers from the response cache when possible; otherwise it
// builds the response over a fresh engine and caches the encoded body.
func (c *Catalog) serveCached(w http.ResponseWriter, r *http.Request, route string, build func(*catalog.Engine) (any, error)) {
	ctx := r.Context()
	key := cache.Key(c.library.Version(), route, r.URL.Query())

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, key); ok {
			writeBody(w, http.StatusOK, body)
			return
		}
	}

	e, err := c.library.Engine()
	if err != nil {
		slog.Error("catalog unavailable", "route", route, "error", err)
		writeError(w, http.StatusServiceUnavailable, LoadFailureMessage)
		return
	}

	data, err := build(e)
	switch {
	case errors.Is(err, catalog.ErrUnknownBand), errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("build catalog response failed", "route", route, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("encode catalog response failed", "route", route, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, body)
	}
	writeBody(w, http.StatusOK, body)
}

// unavailable returns the load failure when no record set has ever been
// loaded.
func unavailable(library *catalog.Library) error {
	if library.Len() > 0 {
		return nil
	}
	return library.Err()
}

func (c *Catalog) resolvePosters(items []catalog.DisplayRecord) {
	if c.posters == nil {
		return
	}
	for i := range items {
		items[i].Poster = c.posters.PosterURL(items[i].Poster)
	}
}
