// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"testing"
	"time"
)

func TestSearchInputAppliesTrailingTerm(t *testing.T) {
	e := New(DefaultPageSize, DefaultBands())
	if err := e.Load(sampleRecords()); err != nil {
		t.Fatal(err)
	}

	pages := make(chan Page, 4)
	s := NewSearchInput(e, 20*time.Millisecond, func(p Page) { pages <- p })
	defer s.Close()

	for _, term := range []string{"n", "no", "nol", "nola", "nolan"} {
		s.Type(term)
	}

	select {
	case p := <-pages:
		if p.Total != 2 {
			t.Errorf("total: got %d, want 2", p.Total)
		}
	case <-time.After(time.Second):
		t.Fatal("search never applied")
	}

	select {
	case p := <-pages:
		t.Errorf("unexpected second recomputation: %+v", p)
	case <-time.After(60 * time.Millisecond):
	}

	s.Do(func(e *Engine) {
		if e.Term() != "nolan" {
			t.Errorf("term: got %q, want nolan", e.Term())
		}
	})
}

func TestSearchInputFlush(t *testing.T) {
	e := New(DefaultPageSize, DefaultBands())
	if err := e.Load(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	var got Page
	s := NewSearchInput(e, time.Hour, func(p Page) { got = p })
	s.Type("villeneuve")

	if !s.Flush() {
		t.Fatal("Flush should apply the pending term")
	}
	if got.Total != 2 {
		t.Errorf("total: got %d, want 2", got.Total)
	}
}
