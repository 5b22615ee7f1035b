// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session identifies anonymous visitors with a long-lived cookie
// and keeps their small per-visitor state (the theme preference) in Valkey
// with automatic TTL expiry.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cinesou/internal/theme"
)

const (
	// CookieName is the name of the visitor cookie sent to the browser.
	CookieName = "cinesou_visitor"

	// DefaultTTL is how long visitor state lives without being touched.
	DefaultTTL = 365 * 24 * time.Hour

	// keyPrefix namespaces visitor keys in Valkey to avoid collisions.
	keyPrefix = "visitor:"
)

type contextKey struct{}

// Visitor ensures every request carries a visitor ID, issuing a cookie
// when the request has none or an unparseable one.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(DefaultTTL.Seconds()),
				})
			}
			next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), id)))
		})
	}
}

// WithVisitorID returns a context carrying id.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// VisitorID returns the visitor ID set by Visitor, or "".
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Store keeps per-visitor values in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a visitor store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
	}
}

// Get reads a visitor value. A missing key returns ok=false.
func (s *Store) Get(ctx context.Context, visitorID, name string) (string, bool, error) {
	val, err := s.client.Get(ctx, key(visitorID, name)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("visitor get: %w", err)
	}
	return val, true, nil
}

// Set writes a visitor value and refreshes its TTL.
func (s *Store) Set(ctx context.Context, visitorID, name, value string) error {
	if err := s.client.Set(ctx, key(visitorID, name), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("visitor set: %w", err)
	}
	return nil
}

// Delete removes a visitor value.
func (s *Store) Delete(ctx context.Context, visitorID, name string) error {
	if err := s.client.Del(ctx, key(visitorID, name)).Err(); err != nil {
		return fmt.Errorf("visitor delete: %w", err)
	}
	return nil
}

// Theme returns the theme preference store for one visitor.
func (s *Store) Theme(visitorID string) theme.Store {
	return themeStore{store: s, visitor: visitorID}
}

type themeStore struct {
	store   *Store
	visitor string
}

func (t themeStore) Get(ctx context.Context) (theme.Preference, bool, error) {
	v, ok, err := t.store.Get(ctx, t.visitor, theme.StorageKey)
	if err != nil || !ok {
		return "", false, err
	}
	return theme.Preference(v), true, nil
}

func (t themeStore) Set(ctx context.Context, p theme.Preference) error {
	return t.store.Set(ctx, t.visitor, theme.StorageKey, string(p))
}

func (t themeStore) Clear(ctx context.Context) error {
	return t.store.Delete(ctx, t.visitor, theme.StorageKey)
}

func key(visitorID, name string) string {
	return keyPrefix + visitorID + ":" + name
}
