// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"cinesou/internal/middleware"
	"cinesou/internal/session"
	"cinesou/internal/theme"
)

// ThemeStores returns the preference store for a visitor.
type ThemeStores func(visitorID string) theme.Store

// Theme serves the light/dark preference. Each request rebuilds the state
// machine from the visitor's stored preference and the system signal
// carried by the color-scheme client hint.
type Theme struct {
	stores ThemeStores
}

// NewTheme creates the theme handler group.
func NewTheme(stores ThemeStores) *Theme {
	return &Theme{stores: stores}
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type systemChange struct {
	theme.Snapshot
	Applied bool `json:"applied"`
}

// Get returns the theme the page should start in.
func (t *Theme) Get(w http.ResponseWriter, r *http.Request) {
	m, rec := t.machine(r)
	defer m.Stop()
	writeJSON(w, http.StatusOK, rec.Snapshot())
}

// Toggle flips the theme and persists it. The response reports the
// transition window as open; the client clears it after the window.
func (t *Theme) Toggle(w http.ResponseWriter, r *http.Request) {
	m, rec := t.machine(r)
	defer m.Stop()
	m.Toggle(r.Context())
	writeJSON(w, http.StatusOK, rec.Snapshot())
}

// Set applies and persists an explicit choice.
func (t *Theme) Set(w http.ResponseWriter, r *http.Request) {
	p, err := t.decodePreference(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, rec := t.machine(r)
	defer m.Stop()
	m.SetExplicit(r.Context(), p)
	writeJSON(w, http.StatusOK, rec.Snapshot())
}

// Reset forgets the visitor's stored choice and falls back to the system
// color scheme.
func (t *Theme) Reset(w http.ResponseWriter, r *http.Request) {
	m, rec := t.machine(r)
	defer m.Stop()
	m.FollowSystem(r.Context(), systemPreference(r))
	writeJSON(w, http.StatusOK, rec.Snapshot())
}

// System reports a change of the visitor's system color scheme. It is
// applied only while the visitor has no stored choice.
func (t *Theme) System(w http.ResponseWriter, r *http.Request) {
	p, err := t.decodePreference(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, rec := t.machine(r)
	defer m.Stop()
	applied := m.OnSystemChange(r.Context(), p)
	writeJSON(w, http.StatusOK, systemChange{Snapshot: rec.Snapshot(), Applied: applied})
}

func (t *Theme) machine(r *http.Request) (*theme.Machine, *theme.Recorder) {
	rec := &theme.Recorder{}
	m := theme.NewMachine(t.stores(session.VisitorID(r.Context())), rec)
	m.Init(r.Context(), systemPreference(r))
	return m, rec
}

func (t *Theme) decodePreference(w http.ResponseWriter, r *http.Request) (theme.Preference, error) {
	var req themeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return "", err
	}
	p, ok := theme.Parse(req.Theme)
	if !ok {
		return "", fmt.Errorf("%w: unknown theme %q", errBadRequest, req.Theme)
	}
	return p, nil
}

// systemPreference reads the client hint. Structured header values arrive
// quoted or bare; anything unrecognized means dark.
func systemPreference(r *http.Request) theme.Preference {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(middleware.ColorSchemeHint)), `"`)
	if p, ok := theme.Parse(v); ok {
		return p
	}
	return theme.Dark
}
