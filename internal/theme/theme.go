// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme implements the storefront's light/dark preference: a
// two-state machine that follows the operating system until the visitor
// makes an explicit choice, which is then persisted and wins from then on.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Preference is the visual mode.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

const (
	// StorageKey is the name the explicit preference is persisted under.
	StorageKey = "cinesou-theme"

	// LightClass is the root marker applied in light mode. Dark mode has none.
	LightClass = "light-theme"

	// MetaColorDark and MetaColorLight are the browser chrome colors.
	MetaColorDark  = "#16181e"
	MetaColorLight = "#ffffff"

	// TransitionWindow is how long the animated-transition marker stays on
	// after a user-initiated toggle.
	TransitionWindow = 300 * time.Millisecond
)

// ErrUnavailable wraps any failure of the preference store. It is logged
// and never returned from the Machine's operations.
var ErrUnavailable = errors.New("theme store unavailable")

// Parse converts a stored or requested value into a Preference. Only the
// exact strings "light" and "dark" are recognized.
func Parse(s string) (Preference, bool) {
	switch Preference(s) {
	case Light, Dark:
		return Preference(s), true
	}
	return "", false
}

// Next returns the opposite preference.
func (p Preference) Next() Preference {
	if p == Light {
		return Dark
	}
	return Light
}

// MetaColor returns the browser chrome color for p.
func (p Preference) MetaColor() string {
	if p == Light {
		return MetaColorLight
	}
	return MetaColorDark
}

// RootClass returns the class the document root carries for p.
func (p Preference) RootClass() string {
	if p == Light {
		return LightClass
	}
	return ""
}

// Toggle describes the control that switches away from the current mode.
type Toggle struct {
	Icon      string `json:"icon"`
	Title     string `json:"title"`
	AriaLabel string `json:"aria_label"`
}

// ToggleFor returns the control shown while p is active.
func ToggleFor(p Preference) Toggle {
	if p == Light {
		return Toggle{Icon: "🌙", Title: "Switch to dark mode", AriaLabel: "Switch to dark mode"}
	}
	return Toggle{Icon: "☀️", Title: "Switch to light mode", AriaLabel: "Switch to light mode"}
}

// Store persists the explicit preference. Get reports ok=false when no
// preference has been stored; Clear removes it.
type Store interface {
	Get(ctx context.Context) (p Preference, ok bool, err error)
	Set(ctx context.Context, p Preference) error
	Clear(ctx context.Context) error
}

// Surface receives the visible effects of a preference change.
type Surface interface {
	SetRootTheme(p Preference)
	SetMetaColor(color string)
	SetToggle(t Toggle)
	SetTransition(on bool)
}

// Machine tracks the active preference for one visitor and mirrors it to
// a Surface. It is safe for concurrent use.
type Machine struct {
	mu      sync.Mutex
	store   Store
	surface Surface
	current Preference
	timer   *time.Timer
	window  time.Duration
}

// NewMachine returns a machine backed by store that renders to surface.
// It starts in dark mode until Init runs.
func NewMachine(store Store, surface Surface) *Machine {
	return &Machine{
		store:   store,
		surface: surface,
		current: Dark,
		window:  TransitionWindow,
	}
}

// Init applies the persisted preference if there is one, otherwise the
// system preference. Nothing is written to the store and no transition
// is shown.
func (m *Machine) Init(ctx context.Context, system Preference) Preference {
	p, ok := m.stored(ctx)
	if !ok {
		p = normalize(system)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(p)
	return p
}

// Toggle flips the preference, persists it and shows the transition
// marker for the transition window.
func (m *Machine) Toggle(ctx context.Context) Preference {
	m.mu.Lock()
	p := m.current.Next()
	m.apply(p)
	m.startTransition()
	m.mu.Unlock()

	m.persist(ctx, p)
	return p
}

// SetExplicit applies p as the visitor's explicit choice and persists it.
func (m *Machine) SetExplicit(ctx context.Context, p Preference) Preference {
	p = normalize(p)

	m.mu.Lock()
	m.apply(p)
	m.mu.Unlock()

	m.persist(ctx, p)
	return p
}

// OnSystemChange follows a change of the operating system preference,
// but only while the visitor has no explicit preference stored. It
// reports whether the change was applied.
func (m *Machine) OnSystemChange(ctx context.Context, system Preference) bool {
	if _, ok := m.stored(ctx); ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(normalize(system))
	return true
}

// FollowSystem forgets the explicit choice and applies system, so later
// system changes take effect again. No transition is shown.
func (m *Machine) FollowSystem(ctx context.Context, system Preference) Preference {
	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			slog.Warn("theme preference clear failed", "error", fmt.Errorf("%w: %w", ErrUnavailable, err))
		}
	}

	p := normalize(system)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(p)
	return p
}

// Current returns the active preference.
func (m *Machine) Current() Preference {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Stop cancels a running transition timer.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// apply must be called with mu held.
func (m *Machine) apply(p Preference) {
	m.current = p
	if m.surface == nil {
		return
	}
	m.surface.SetRootTheme(p)
	m.surface.SetMetaColor(p.MetaColor())
	m.surface.SetToggle(ToggleFor(p))
}

// startTransition must be called with mu held. A toggle during an open
// window restarts it.
func (m *Machine) startTransition() {
	if m.surface == nil {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.surface.SetTransition(true)

	var t *time.Timer
	t = time.AfterFunc(m.window, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.timer != t {
			return
		}
		m.timer = nil
		m.surface.SetTransition(false)
	})
	m.timer = t
}

// stored reads the persisted preference. Read failures and unrecognized
// values count as absent.
func (m *Machine) stored(ctx context.Context) (Preference, bool) {
	if m.store == nil {
		return "", false
	}
	p, ok, err := m.store.Get(ctx)
	if err != nil {
		slog.Warn("theme preference read failed", "error", fmt.Errorf("%w: %w", ErrUnavailable, err))
		return "", false
	}
	if !ok {
		return "", false
	}
	if _, valid := Parse(string(p)); !valid {
		return "", false
	}
	return p, true
}

func (m *Machine) persist(ctx context.Context, p Preference) {
	if m.store == nil {
		return
	}
	if err := m.store.Set(ctx, p); err != nil {
		slog.Warn("theme preference write failed", "preference", p, "error", fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
}

func normalize(p Preference) Preference {
	if p == Light {
		return Light
	}
	return Dark
}
