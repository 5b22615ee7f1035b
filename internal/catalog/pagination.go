// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

// windowRadius is how many page numbers are shown on each side of the
// current page.
const windowRadius = 2

// Window is the pagination control for a view: a bounded run of page
// numbers plus prev/next targets. Prev and Next are 0 when unavailable.
type Window struct {
	Current int   `json:"current"`
	Pages   []int `json:"pages"`
	Prev    int   `json:"prev,omitempty"`
	Next    int   `json:"next,omitempty"`
}

// NewWindow builds the window for current out of totalPages. An empty
// view yields no page numbers at all.
func NewWindow(current, totalPages int) Window {
	w := Window{Current: current, Pages: []int{}}
	if current > 1 {
		w.Prev = current - 1
	}
	start := max(1, current-windowRadius)
	end := min(totalPages, current+windowRadius)
	for i := start; i <= end; i++ {
		w.Pages = append(w.Pages, i)
	}
	if current < totalPages {
		w.Next = current + 1
	}
	return w
}

// HasPrev reports whether a previous-page control should be shown.
func (w Window) HasPrev() bool { return w.Prev > 0 }

// HasNext reports whether a next-page control should be shown.
func (w Window) HasNext() bool { return w.Next > 0 }
