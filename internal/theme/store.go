// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"sync"
)

// MemoryStore keeps the preference in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	val Preference
	set bool
}

// Get implements Store.
func (s *MemoryStore) Get(context.Context) (Preference, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, p Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val, s.set = p, true
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val, s.set = "", false
	return nil
}

// Snapshot is the rendered theme state as the client needs it.
type Snapshot struct {
	Theme      Preference `json:"theme"`
	RootClass  string     `json:"root_class"`
	MetaColor  string     `json:"meta_color"`
	Toggle     Toggle     `json:"toggle"`
	Transition bool       `json:"transition"`
}

// Recorder is a Surface that remembers the last value of each effect.
type Recorder struct {
	mu   sync.Mutex
	snap Snapshot
}

func (r *Recorder) SetRootTheme(p Preference) {
	r.mu.Lock()
	r.snap.Theme = p
	r.snap.RootClass = p.RootClass()
	r.mu.Unlock()
}

func (r *Recorder) SetMetaColor(color string) {
	r.mu.Lock()
	r.snap.MetaColor = color
	r.mu.Unlock()
}

func (r *Recorder) SetToggle(t Toggle) {
	r.mu.Lock()
	r.snap.Toggle = t
	r.mu.Unlock()
}

func (r *Recorder) SetTransition(on bool) {
	r.mu.Lock()
	r.snap.Transition = on
	r.mu.Unlock()
}

// Snapshot returns the recorded state.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}
