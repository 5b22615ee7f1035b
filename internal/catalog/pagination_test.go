// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		want       Window
	}{
		{"first of many", 1, 10, Window{Current: 1, Pages: []int{1, 2, 3}, Next: 2}},
		{"middle", 5, 10, Window{Current: 5, Pages: []int{3, 4, 5, 6, 7}, Prev: 4, Next: 6}},
		{"last", 10, 10, Window{Current: 10, Pages: []int{8, 9, 10}, Prev: 9}},
		{"single page", 1, 1, Window{Current: 1, Pages: []int{1}}},
		{"second of three", 2, 3, Window{Current: 2, Pages: []int{1, 2, 3}, Prev: 1, Next: 3}},
		{"empty view", 1, 0, Window{Current: 1, Pages: []int{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWindow(tt.current, tt.totalPages)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindowAffordances(t *testing.T) {
	w := NewWindow(1, 3)
	if w.HasPrev() {
		t.Error("first page has no prev")
	}
	if !w.HasNext() {
		t.Error("first of three has next")
	}
	w = NewWindow(3, 3)
	if !w.HasPrev() || w.HasNext() {
		t.Errorf("last page: prev=%v next=%v", w.HasPrev(), w.HasNext())
	}
}

func TestEnginePagination(t *testing.T) {
	e := New(DefaultPageSize, DefaultBands())
	if err := e.Load(numberedRecords(25)); err != nil {
		t.Fatal(err)
	}
	e.SetPage(2)
	want := Window{Current: 2, Pages: []int{1, 2, 3}, Prev: 1, Next: 3}
	if diff := cmp.Diff(want, e.Pagination()); diff != "" {
		t.Errorf("pagination (-want +got):\n%s", diff)
	}
}
