// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"cinesou/internal/cache"
	"cinesou/internal/catalog"
)

func listIDs(l movieList) []string {
	ids := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestListMovies(t *testing.T) {
	env := newTestEnv(t, testLibrary(t, testRecords()), nil)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"all in insertion order", "", []string{"1", "2", "3"}},
		{"search by director", "?q=nolan", []string{"1", "3"}},
		{"search trims and ignores case", "?q=%20%20MATRIX%20", []string{"2"}},
		{"genre substring", "?genre=sci", []string{"1"}},
		{"price band", "?price=5-10", []string{"1", "2"}},
		{"year band", "?year=2020s", []string{"3"}},
		{"search and filter combine", "?q=nolan&price=10-15", []string{"3"}},
		{"sort by price high", "?sort=price-high", []string{"3", "1", "2"}},
		{"sort by title", "?sort=title", []string{"1", "3", "2"}},
		{"unknown sort keeps order", "?sort=popularity", []string{"1", "2", "3"}},
		{"no match", "?q=zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/movies"+tt.query, "")
			assertStatus(t, rec, http.StatusOK)

			got := decode[movieList](t, rec)
			if diff := cmp.Diff(tt.wantIDs, listIDs(got)); diff != "" {
				t.Errorf("ids (-want +got):\n%s", diff)
			}
			if want := fmt.Sprintf("Showing %d movies", len(tt.wantIDs)); got.Summary != want {
				t.Errorf("summary: got %q, want %q", got.Summary, want)
			}
		})
	}
}

func TestListMoviesDisplayFields(t *testing.T) {
	env := newTestEnv(t, testLibrary(t, testRecords()), nil)

	rec := env.do(t, http.MethodGet, "/api/movies", "")
	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	got := decode[movieList](t, rec)
	first := got.Items[0]
	if first.Price != "9.99" {
		t.Errorf("price: got %q, want 9.99", first.Price)
	}
	if first.Poster != "https://media.example.com/posters/inception.jpg" {
		t.Errorf("poster: got %q", first.Poster)
	}
	if got.Items[2].Poster != "https://cdn.example.com/oppenheimer.jpg" {
		t.Errorf("absolute poster rewritten: got %q", got.Items[2].Poster)
	}
	if got.Number != 1 || got.Pages != 1 || got.PageSize != catalog.DefaultPageSize {
		t.Errorf("page: got number=%d pages=%d size=%d", got.Number, got.Pages, got.PageSize)
	}
}

func TestListMoviesPagination(t *testing.T) {
	records := make([]catalog.Record, 50)
	for i := range records {
		records[i] = catalog.Record{ID: fmt.Sprintf("m%02d", i+1), Title: fmt.Sprintf("Movie %02d", i+1), Year: 2005, Genre: "Drama", Price: 9.99}
	}
	env := newTestEnv(t, testLibrary(t, records), nil)

	tests := []struct {
		page     string
		wantPage int
		wantWin  catalog.Window
		wantLen  int
	}{
		{"1", 1, catalog.Window{Current: 1, Pages: []int{1, 2, 3}, Next: 2}, 12},
		{"3", 3, catalog.Window{Current: 3, Pages: []int{1, 2, 3, 4, 5}, Prev: 2, Next: 4}, 12},
		{"5", 5, catalog.Window{Current: 5, Pages: []int{3, 4, 5}, Prev: 4}, 2},
		{"99", 5, catalog.Window{Current: 5, Pages: []int{3, 4, 5}, Prev: 4}, 2},
		{"0", 1, catalog.Window{Current: 1, Pages: []int{1, 2, 3}, Next: 2}, 12},
	}

	for _, tt := range tests {
		t.Run("page "+tt.page, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/movies?page="+tt.page, "")
			assertStatus(t, rec, http.StatusOK)

			got := decode[movieList](t, rec)
			if got.Number != tt.wantPage {
				t.Errorf("page: got %d, want %d", got.Number, tt.wantPage)
			}
			if len(got.Items) != tt.wantLen {
				t.Errorf("items: got %d, want %d", len(got.Items), tt.wantLen)
			}
			if diff := cmp.Diff(tt.wantWin, got.Pagination); diff != "" {
				t.Errorf("window (-want +got):\n%s", diff)
			}
			if got.Summary != "Showing 50 movies" {
				t.Errorf("summary: got %q", got.Summary)
			}
		})
	}
}

func TestListMoviesBadRequest(t *testing.T) {
	env := newTestEnv(t, testLibrary(t, testRecords()), nil)

	for _, q := range []string{"?price=cheap", "?year=1800s", "?page=two"} {
		t.Run(q, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/movies"+q, "")
			assertStatus(t, rec, http.StatusBadRequest)
			if msg := decode[errorBody](t, rec).Error; msg == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestCatalogLoadFailure(t *testing.T) {
	env := newTestEnv(t, failedLibrary(t), nil)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/movies", ""},
		{http.MethodGet, "/api/featured", ""},
		{http.MethodGet, "/api/facets", ""},
		{http.MethodGet, "/api/movies/1", ""},
		{http.MethodGet, "/api/movies/1/purchase", ""},
		{http.MethodPost, "/api/movies/1/purchase", `{"confirm":true}`},
		{http.MethodPost, "/api/movies/1/purchase", `{"confirm":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+tt.body, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.body)
			assertStatus(t, rec, http.StatusServiceUnavailable)
			if msg := decode[errorBody](t, rec).Error; msg != LoadFailureMessage {
				t.Errorf("message: got %q, want %q", msg, LoadFailureMessage)
			}
		})
	}
	if n := env.Notifier.count(); n != 0 {
		t.Errorf("notifications: got %d, want 0", n)
	}
}

func TestMovieDetail(t *testing.T) {
	env := newTestEnv(t, testLibrary(t, testRecords()), nil)

	rec := env.do(t, http.MethodGet, "/api/movies/1", "")
	assertStatus(t, rec, http.StatusOK)

	got := decode[movieDetail](t, rec)
	if got.Title != "Inception" || got.Director != "Christopher Nolan" {
		t.Errorf("record: got %+v", got.Record)
	}
	if !strings.Contains(got.DescriptionHTML, "<strong>secrets</strong>") {
		t.Errorf("description html: got %q", got.DescriptionHTML)
	}
	if got.Poster != "https://media.example.com/posters/inception.jpg" {
		t.Errorf("poster: got %q", got.Poster)
	}

	rec = env.do(t, http.MethodGet, "/api/movies/404", "")
	assertStatus(t, rec, http.StatusNotFound)
}

func TestFeaturedSlider(t *testing.T) {
	records := make([]catalog.Record, 9)
	for i := range records {
		records[i] = catalog.Record{ID: fmt.Sprintf("f%d", i+1), Title: fmt.Sprintf("Feature %d", i+1), Price: 5, Featured: i < 7}
	}
	env := newTestEnv(t, testLibrary(t, records), nil)

	tests := []struct {
		query     string
		wantIndex int
		wantPrev  bool
		wantNext  bool
	}{
		{"", 0, false, true},
		{"?index=1", 1, true, true},
		{"?index=9", 2, true, false},
		{"?index=-3", 0, false, true},
	}

	for _, tt := range tests {
		t.Run("index"+tt.query, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/featured"+tt.query, "")
			assertStatus(t, rec, http.StatusOK)

			got := decode[featuredList](t, rec)
			if len(got.Items) != 7 {
				t.Fatalf("items: got %d, want 7", len(got.Items))
			}
			if got.Index != tt.wantIndex || got.MaxIndex != 2 {
				t.Errorf("index: got %d/%d, want %d/2", got.Index, got.MaxIndex, tt.wantIndex)
			}
			if got.Offset != -tt.wantIndex*catalog.SliderCardWidth {
				t.Errorf("offset: got %d", got.Offset)
			}
			if got.CanPrev != tt.wantPrev || got.CanNext != tt.wantNext {
				t.Errorf("controls: got prev=%v next=%v", got.CanPrev, got.CanNext)
			}
			if got.Visible != catalog.SliderVisible {
				t.Errorf("visible: got %d", got.Visible)
			}
		})
	}

	rec := env.do(t, http.MethodGet, "/api/featured?index=x", "")
	assertStatus(t, rec, http.StatusBadRequest)
}

func TestFacets(t *testing.T) {
	env := newTestEnv(t, testLibrary(t, testRecords()), nil)

	rec := env.do(t, http.MethodGet, "/api/facets", "")
	assertStatus(t, rec, http.StatusOK)

	got := decode[catalog.Facets](t, rec)
	want := []catalog.GenreFacet{{Name: "Action", Count: 1}, {Name: "Drama", Count: 1}, {Name: "Sci-Fi", Count: 1}}
	if diff := cmp.Diff(want, got.Genres); diff != "" {
		t.Errorf("genres (-want +got):\n%s", diff)
	}
	if got.MinPrice != 7.99 || got.MaxPrice != 14.99 {
		t.Errorf("price range: got %v-%v", got.MinPrice, got.MaxPrice)
	}
	if len(got.Bands.Price) == 0 || len(got.Bands.Year) == 0 {
		t.Error("expected band tables")
	}
}

// TestListMoviesCached verifies that list responses land in the Valkey
// response cache under the library version.
func TestListMoviesCached(t *testing.T) {
	vk := testValkeyClient(t)
	responses := cache.NewResponseCache(vk, time.Minute)
	lib := testLibrary(t, testRecords())
	env := newTestEnv(t, lib, responses)

	rec := env.do(t, http.MethodGet, "/api/movies?q=nolan", "")
	assertStatus(t, rec, http.StatusOK)

	key := cache.Key(lib.Version(), "movies", url.Values{"q": {"nolan"}})
	body, ok := responses.Get(context.Background(), key)
	if !ok {
		t.Fatalf("expected cached body under %q", key)
	}
	if string(body) != strings.TrimSpace(rec.Body.String()) {
		t.Errorf("cached body differs:\n got %s\nwant %s", body, rec.Body.String())
	}

	// A second request is served from the cache unchanged.
	again := env.do(t, http.MethodGet, "/api/movies?q=nolan", "")
	assertStatus(t, again, http.StatusOK)
	if again.Body.String() != string(body) {
		t.Errorf("second response: got %s", again.Body.String())
	}
}
