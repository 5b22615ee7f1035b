// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"testing"

	"cinesou/internal/purchase"
)

func TestPurchaseQuote(t *testing.T) {
	env := newTestEnv(t, testLibrary(t, testRecords()), nil)

	rec := env.do(t, http.MethodGet, "/api/movies/3/purchase", "")
	assertStatus(t, rec, http.StatusOK)

	got := decode[purchase.Quote](t, rec)
	if want := `Purchase "Oppenheimer" for $14.99?`; got.Prompt != want {
		t.Errorf("prompt: got %q, want %q", got.Prompt, want)
	}
	if got.Display != "14.99" {
		t.Errorf("price: got %q", got.Display)
	}

	rec = env.do(t, http.MethodGet, "/api/movies/missing/purchase", "")
	assertStatus(t, rec, http.StatusNotFound)
}

func TestPurchaseBuy(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		body          string
		wantStatus    int
		wantPurchased bool
		wantNotified  int
	}{
		{"confirmed", "1", `{"confirm":true}`, http.StatusOK, true, 1},
		{"declined", "1", `{"confirm":false}`, http.StatusOK, false, 0},
		{"unknown movie", "missing", `{"confirm":true}`, http.StatusNotFound, false, 0},
		{"malformed body", "1", `{"confirm":`, http.StatusBadRequest, false, 0},
		{"empty body", "1", "", http.StatusBadRequest, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, testLibrary(t, testRecords()), nil)

			rec := env.do(t, http.MethodPost, "/api/movies/"+tt.id+"/purchase", tt.body)
			assertStatus(t, rec, tt.wantStatus)

			if n := env.Notifier.count(); n != tt.wantNotified {
				t.Errorf("notifications: got %d, want %d", n, tt.wantNotified)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			got := decode[purchaseResult](t, rec)
			if got.Purchased != tt.wantPurchased {
				t.Errorf("purchased: got %v, want %v", got.Purchased, tt.wantPurchased)
			}
			if !tt.wantPurchased {
				if got.Receipt != nil {
					t.Errorf("declined purchase returned receipt %+v", got.Receipt)
				}
				return
			}
			want := `Thank you for purchasing "Inception"! You will receive download instructions via email.`
			if got.Receipt == nil || got.Receipt.Notice != want {
				t.Errorf("receipt: got %+v", got.Receipt)
			}
		})
	}
}
