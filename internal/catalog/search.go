// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"sync"
	"time"

	"cinesou/internal/debounce"
)

// SearchDebounce is the quiet period after the last keystroke before the
// search term is applied.
const SearchDebounce = 300 * time.Millisecond

// SearchInput feeds keystrokes into an Engine through a debounce, so a
// burst of typing causes a single recomputation with the final term.
// Other mutations of the same engine must go through Do.
type SearchInput struct {
	mu       sync.Mutex
	engine   *Engine
	onChange func(Page)
	debounce *debounce.Func[string]
}

// NewSearchInput wires a debounced search box to e. onChange receives the
// recomputed page after each applied term; it may be nil.
func NewSearchInput(e *Engine, wait time.Duration, onChange func(Page)) *SearchInput {
	s := &SearchInput{engine: e, onChange: onChange}
	s.debounce = debounce.New(wait, s.apply)
	return s
}

// Type records the current contents of the search box.
func (s *SearchInput) Type(term string) {
	s.debounce.Call(term)
}

// Flush applies a pending term immediately, e.g. when the user presses Enter.
func (s *SearchInput) Flush() bool {
	return s.debounce.Flush()
}

// Close discards any pending term.
func (s *SearchInput) Close() {
	s.debounce.Stop()
}

// Do runs fn with exclusive access to the engine.
func (s *SearchInput) Do(fn func(*Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

func (s *SearchInput) apply(term string) {
	s.mu.Lock()
	s.engine.SetSearchTerm(term)
	page := s.engine.Page()
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(page)
	}
}
