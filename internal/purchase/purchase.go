// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package purchase implements the storefront's confirm-then-thank-you
// purchase flow. No payment is taken.
package purchase

import (
	"context"
	"errors"
	"fmt"

	"cinesou/internal/catalog"
)

var (
	// ErrNotFound is returned for an unknown movie ID.
	ErrNotFound = errors.New("movie not found")

	// ErrDeclined is returned when the buyer does not confirm.
	ErrDeclined = errors.New("purchase declined")
)

// Finder resolves records by ID. *catalog.Library and *catalog.Engine
// satisfy it.
type Finder interface {
	Find(id string) (catalog.Record, bool)
}

// Confirmer asks the buyer to accept the prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Answer is a Confirmer with a fixed reply, for requests that carry the
// buyer's decision.
type Answer bool

// Confirm returns the fixed reply.
func (a Answer) Confirm(context.Context, string) (bool, error) { return bool(a), nil }

// Notifier is told about completed purchases. It must not fail the
// purchase.
type Notifier interface {
	PurchaseCompleted(ctx context.Context, r Receipt)
}

// Quote is the confirmation shown before purchase.
type Quote struct {
	MovieID string  `json:"movie_id"`
	Title   string  `json:"title"`
	Price   float64 `json:"-"`
	Display string  `json:"price"`
	Prompt  string  `json:"prompt"`
}

// Receipt is the outcome of a confirmed purchase.
type Receipt struct {
	MovieID string  `json:"movie_id"`
	Title   string  `json:"title"`
	Price   float64 `json:"-"`
	Notice  string  `json:"notice"`
}

// Service runs purchases against a catalog.
type Service struct {
	movies   Finder
	notifier Notifier
}

// NewService returns a service resolving movies through f. notifier may be nil.
func NewService(f Finder, notifier Notifier) *Service {
	return &Service{movies: f, notifier: notifier}
}

// Quote resolves id and builds its confirmation prompt.
func (s *Service) Quote(id string) (Quote, error) {
	r, ok := s.movies.Find(id)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	price := catalog.FormatPrice(r.Price)
	return Quote{
		MovieID: r.ID,
		Title:   r.Title,
		Price:   r.Price,
		Display: price,
		Prompt:  fmt.Sprintf("Purchase \"%s\" for $%s?", r.Title, price),
	}, nil
}

// Purchase asks c to confirm the quote for id and, if accepted, returns
// the completion notice.
func (s *Service) Purchase(ctx context.Context, id string, c Confirmer) (Receipt, error) {
	q, err := s.Quote(id)
	if err != nil {
		return Receipt{}, err
	}

	ok, err := c.Confirm(ctx, q.Prompt)
	if err != nil {
		return Receipt{}, fmt.Errorf("confirm purchase: %w", err)
	}
	if !ok {
		return Receipt{}, ErrDeclined
	}

	rec := Receipt{
		MovieID: q.MovieID,
		Title:   q.Title,
		Price:   q.Price,
		Notice:  fmt.Sprintf("Thank you for purchasing \"%s\"! You will receive download instructions via email.", q.Title),
	}
	if s.notifier != nil {
		s.notifier.PurchaseCompleted(ctx, rec)
	}
	return rec, nil
}
