// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cinesou/internal/catalog"
	"cinesou/internal/purchase"
)

// Purchase serves the confirm-then-buy flow. No money moves; a confirmed
// purchase only produces a notice and a best-effort event.
type Purchase struct {
	service *purchase.Service
	library *catalog.Library
}

// NewPurchase creates the purchase handler group. library is the record
// set service resolves against; it tells a missing movie apart from a
// catalog that never loaded.
func NewPurchase(service *purchase.Service, library *catalog.Library) *Purchase {
	return &Purchase{service: service, library: library}
}

type purchaseRequest struct {
	Confirm bool `json:"confirm"`
}

type purchaseResult struct {
	Purchased bool              `json:"purchased"`
	Receipt   *purchase.Receipt `json:"receipt,omitempty"`
}

// Quote returns the confirmation prompt for a movie.
func (p *Purchase) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := p.service.Quote(chi.URLParam(r, "id"))
	if errors.Is(err, purchase.ErrNotFound) {
		p.notFound(w)
		return
	}
	if err != nil {
		slog.Error("purchase quote failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Buy takes the buyer's answer to the prompt. A declined prompt is not an
// error; it simply purchases nothing.
func (p *Purchase) Buy(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := p.service.Purchase(r.Context(), chi.URLParam(r, "id"), purchase.Answer(req.Confirm))
	switch {
	case errors.Is(err, purchase.ErrNotFound):
		p.notFound(w)
	case errors.Is(err, purchase.ErrDeclined):
		writeJSON(w, http.StatusOK, purchaseResult{})
	case err != nil:
		slog.Error("purchase failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		slog.Info("purchase completed", "movie_id", receipt.MovieID)
		writeJSON(w, http.StatusOK, purchaseResult{Purchased: true, Receipt: &receipt})
	}
}

// notFound answers a missed lookup: 503 when the catalog never loaded,
// 404 otherwise.
func (p *Purchase) notFound(w http.ResponseWriter) {
	if err := unavailable(p.library); err != nil {
		slog.Error("purchase without catalog", "error", err)
		writeError(w, http.StatusServiceUnavailable, LoadFailureMessage)
		return
	}
	writeError(w, http.StatusNotFound, "Movie not found")
}
