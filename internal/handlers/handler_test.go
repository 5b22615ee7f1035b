// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests. Valkey-backed tests are skipped when Valkey is unavailable.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"cinesou/internal/cache"
	"cinesou/internal/catalog"
	"cinesou/internal/contact"
	"cinesou/internal/purchase"
	"cinesou/internal/session"
	"cinesou/internal/theme"
)

const testVisitor = "0b7f3c1e-4a57-4b61-9a1e-2f4d5c6b7a80"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"catalog:*", "visitor:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})
	return client
}

func testRecords() []catalog.Record {
	return []catalog.Record{
		{ID: "1", Title: "Inception", Year: 2010, Genre: "Sci-Fi", Director: "Christopher Nolan", Rating: 8.8, Price: 9.99, Poster: "posters/inception.jpg", Description: "A thief who steals **secrets** through dreams.", Featured: true},
		{ID: "2", Title: "The Matrix", Year: 1999, Genre: "Action", Director: "Lana Wachowski", Rating: 8.7, Price: 7.99, Poster: "posters/matrix.jpg"},
		{ID: "3", Title: "Oppenheimer", Year: 2023, Genre: "Drama", Director: "Christopher Nolan", Rating: 8.3, Price: 14.99, Poster: "https://cdn.example.com/oppenheimer.jpg", Featured: true},
	}
}

func testLibrary(t *testing.T, records []catalog.Record) *catalog.Library {
	t.Helper()
	lib := catalog.NewLibrary(catalog.LoaderFunc(func(context.Context) ([]catalog.Record, error) {
		return records, nil
	}), catalog.DefaultPageSize, catalog.DefaultBands())
	if err := lib.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return lib
}

func failedLibrary(t *testing.T) *catalog.Library {
	t.Helper()
	lib := catalog.NewLibrary(catalog.LoaderFunc(func(context.Context) ([]catalog.Record, error) {
		return nil, errors.New("connection refused")
	}), catalog.DefaultPageSize, catalog.DefaultBands())
	if err := lib.Reload(context.Background()); err == nil {
		t.Fatal("Reload: expected error")
	}
	return lib
}

// prefixPosters resolves relative posters against a fixed base.
type prefixPosters string

func (p prefixPosters) PosterURL(poster string) string {
	if strings.HasPrefix(poster, "https://") {
		return poster
	}
	return string(p) + "/" + poster
}

// recordingNotifier captures completed purchases.
type recordingNotifier struct {
	mu       sync.Mutex
	receipts []purchase.Receipt
}

func (n *recordingNotifier) PurchaseCompleted(_ context.Context, r purchase.Receipt) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receipts = append(n.receipts, r)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.receipts)
}

// memoryThemes hands out one MemoryStore per visitor.
type memoryThemes struct {
	mu     sync.Mutex
	stores map[string]*theme.MemoryStore
}

func (m *memoryThemes) store(visitorID string) theme.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stores == nil {
		m.stores = make(map[string]*theme.MemoryStore)
	}
	s, ok := m.stores[visitorID]
	if !ok {
		s = &theme.MemoryStore{}
		m.stores[visitorID] = s
	}
	return s
}

// testEnv holds the handler groups mounted on a chi router the same way
// the application router mounts them.
type testEnv struct {
	Library   *catalog.Library
	Notifier  *recordingNotifier
	Themes    *memoryThemes
	Submitted []contact.Submission
	SubmitErr error

	handler http.Handler
}

func newTestEnv(t *testing.T, lib *catalog.Library, responses *cache.ResponseCache) *testEnv {
	t.Helper()

	env := &testEnv{Library: lib, Notifier: &recordingNotifier{}, Themes: &memoryThemes{}}
	submitter := contact.SubmitterFunc(func(_ context.Context, s contact.Submission) error {
		env.Submitted = append(env.Submitted, s)
		return env.SubmitErr
	})

	cat := NewCatalog(lib, prefixPosters("https://media.example.com"), responses)
	buy := NewPurchase(purchase.NewService(lib, env.Notifier), lib)
	th := NewTheme(env.Themes.store)
	ct := NewContact(submitter)

	r := chi.NewRouter()
	r.Get("/api/movies", cat.List)
	r.Get("/api/movies/{id}", cat.Movie)
	r.Get("/api/movies/{id}/purchase", buy.Quote)
	r.Post("/api/movies/{id}/purchase", buy.Buy)
	r.Get("/api/featured", cat.Featured)
	r.Get("/api/facets", cat.Facets)
	r.Get("/api/theme", th.Get)
	r.Post("/api/theme/toggle", th.Toggle)
	r.Put("/api/theme", th.Set)
	r.Delete("/api/theme", th.Reset)
	r.Post("/api/theme/system", th.System)
	r.Post("/api/contact/validate", ct.Validate)
	r.Post("/api/contact", ct.Submit)
	env.handler = r
	return env
}

// do sends a request as testVisitor and returns the recorder.
func (e *testEnv) do(t *testing.T, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	req = req.WithContext(session.WithVisitorID(req.Context(), testVisitor))

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}
