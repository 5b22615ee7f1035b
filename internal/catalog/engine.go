// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog owns the movie record set and the filtered, sorted and
// paginated view derived from it. The Engine holds no UI state: callers
// drive it with explicit method calls and render what Page returns.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of records on one grid page.
const DefaultPageSize = 12

var (
	// ErrDataLoad is returned when the record source fails to fetch or parse.
	ErrDataLoad = errors.New("catalog data load failed")

	// ErrDuplicateID is returned when two records share an identifier.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrUnknownBand is returned when a filter names a band that is not
	// in the configured tables.
	ErrUnknownBand = errors.New("unknown filter band")
)

// Filter narrows the view. Empty fields impose no constraint.
type Filter struct {
	Genre     string `json:"genre,omitempty"`
	PriceBand string `json:"price,omitempty"`
	YearBand  string `json:"year,omitempty"`
}

// Page is one slice of the current view.
type Page struct {
	Items    []DisplayRecord `json:"items"`
	Total    int             `json:"total"`
	Number   int             `json:"page"`
	Pages    int             `json:"pages"`
	PageSize int             `json:"page_size"`
}

// Summary is the count line shown above the grid.
func (p Page) Summary() string {
	return fmt.Sprintf("Showing %d movies", p.Total)
}

// Engine holds the full record set and its derived view. It is not safe
// for concurrent use; see Library for a shared, reloadable holder.
type Engine struct {
	records []Record
	index   map[string]int
	view    []Record

	term   string
	filter Filter
	price  *PriceBand
	year   *YearBand
	sort   SortKey
	page   int

	pageSize int
	bands    Bands
	collator *collate.Collator
}

// New creates an empty engine. A non-positive pageSize selects
// DefaultPageSize.
func New(pageSize int, bands Bands) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	e := &Engine{
		pageSize: pageSize,
		bands:    bands,
		collator: collate.New(language.English),
	}
	e.Reset()
	return e
}

// Reset drops all records and returns every criterion to its identity value.
func (e *Engine) Reset() {
	e.records = nil
	e.index = make(map[string]int)
	e.view = nil
	e.term = ""
	e.filter = Filter{}
	e.price = nil
	e.year = nil
	e.sort = SortNone
	e.page = 1
}

// Load replaces the record set. The view starts unfiltered, in insertion
// order, on page 1. If two records share an ID the engine is left empty.
func (e *Engine) Load(records []Record) error {
	index, err := indexRecords(records)
	e.Reset()
	if err != nil {
		return err
	}
	e.records = slices.Clone(records)
	e.index = index
	e.recompute()
	return nil
}

// LoadFrom fetches records from l and loads them. Any failure leaves the
// engine empty and is reported as ErrDataLoad.
func (e *Engine) LoadFrom(ctx context.Context, l Loader) error {
	records, err := l.Load(ctx)
	if err != nil {
		e.Reset()
		return fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	if err := e.Load(records); err != nil {
		return fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	return nil
}

// SetSearchTerm matches term case-insensitively against title, director
// and genre. An empty term matches everything. The page resets to 1.
func (e *Engine) SetSearchTerm(term string) {
	e.term = strings.ToLower(strings.TrimSpace(term))
	e.recompute()
	e.page = 1
}

// SetFilters replaces the genre, price and year constraints. The page
// resets to 1. Unknown band keys leave the view unchanged.
func (e *Engine) SetFilters(f Filter) error {
	var price *PriceBand
	if f.PriceBand != "" {
		b, ok := e.bands.PriceBand(f.PriceBand)
		if !ok {
			return fmt.Errorf("%w: price %q", ErrUnknownBand, f.PriceBand)
		}
		price = &b
	}
	var year *YearBand
	if f.YearBand != "" {
		b, ok := e.bands.YearBand(f.YearBand)
		if !ok {
			return fmt.Errorf("%w: year %q", ErrUnknownBand, f.YearBand)
		}
		year = &b
	}

	e.filter = f
	e.price = price
	e.year = year
	e.recompute()
	e.page = 1
	return nil
}

// SetSort changes the view order. The current page is kept but re-clamped.
func (e *Engine) SetSort(key SortKey) {
	e.sort = key
	e.recompute()
	e.clampPage()
}

// SetPage moves to page n, clamped to the valid range, and returns the
// resulting page number.
func (e *Engine) SetPage(n int) int {
	e.page = n
	e.clampPage()
	return e.page
}

// Page returns the current slice of the view and the filtered total.
func (e *Engine) Page() Page {
	visible := e.Visible()
	items := make([]DisplayRecord, 0, len(visible))
	for _, r := range visible {
		items = append(items, r.Display())
	}
	return Page{
		Items:    items,
		Total:    len(e.view),
		Number:   e.page,
		Pages:    e.totalPages(),
		PageSize: e.pageSize,
	}
}

// Visible returns the full records on the current page.
func (e *Engine) Visible() []Record {
	start := (e.page - 1) * e.pageSize
	if start >= len(e.view) {
		return nil
	}
	end := min(start+e.pageSize, len(e.view))
	return slices.Clone(e.view[start:end])
}

// Pagination returns the page-number window around the current page.
func (e *Engine) Pagination() Window {
	return NewWindow(e.page, e.totalPages())
}

// Featured returns featured records in insertion order, independent of
// the current filters.
func (e *Engine) Featured() []Record {
	var out []Record
	for _, r := range e.records {
		if r.Featured {
			out = append(out, r)
		}
	}
	return out
}

// Find resolves a record by ID from the full set.
func (e *Engine) Find(id string) (Record, bool) {
	i, ok := e.index[id]
	if !ok {
		return Record{}, false
	}
	return e.records[i], true
}

// Len returns the size of the full record set.
func (e *Engine) Len() int { return len(e.records) }

// Term returns the normalized search term.
func (e *Engine) Term() string { return e.term }

// Filter returns the active filter.
func (e *Engine) Filter() Filter { return e.filter }

// Sort returns the active sort key.
func (e *Engine) Sort() SortKey { return e.sort }

// Bands returns the band tables the engine filters with.
func (e *Engine) Bands() Bands { return e.bands }

// recompute rebuilds the view from the full set. It never patches the
// previous view incrementally.
func (e *Engine) recompute() {
	view := make([]Record, 0, len(e.records))
	for _, r := range e.records {
		if e.matches(r) {
			view = append(view, r)
		}
	}
	sortRecords(view, e.sort, e.collator)
	e.view = view
}

func (e *Engine) matches(r Record) bool {
	if e.term != "" &&
		!containsFold(r.Title, e.term) &&
		!containsFold(r.Director, e.term) &&
		!containsFold(r.Genre, e.term) {
		return false
	}
	if g := strings.TrimSpace(e.filter.Genre); g != "" && !containsFold(r.Genre, strings.ToLower(g)) {
		return false
	}
	if e.price != nil && !e.price.Contains(r.Price) {
		return false
	}
	if e.year != nil && !e.year.Contains(r.Year) {
		return false
	}
	return true
}

func (e *Engine) totalPages() int {
	return (len(e.view) + e.pageSize - 1) / e.pageSize
}

func (e *Engine) clampPage() {
	e.page = min(max(e.page, 1), max(1, e.totalPages()))
}

// containsFold reports whether s contains the already lower-cased needle.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// indexRecords maps IDs to positions, rejecting duplicates.
func indexRecords(records []Record) (map[string]int, error) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := index[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		index[r.ID] = i
	}
	return index, nil
}
