// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
)

// SortKey selects the order of the catalog view.
type SortKey string

const (
	SortNone      SortKey = "none"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortTitle     SortKey = "title"
	SortRating    SortKey = "rating"
)

// ParseSortKey maps a raw select value to a SortKey. Anything unrecognized,
// including the empty string, keeps the input order.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortTitle, SortRating:
		return k
	}
	return SortNone
}

// sortRecords orders records in place. The sort is stable, so equal keys
// keep their prior relative order.
func sortRecords(records []Record, key SortKey, coll *collate.Collator) {
	var less func(a, b Record) int
	switch key {
	case SortNewest:
		less = func(a, b Record) int { return cmp.Compare(b.Year, a.Year) }
	case SortOldest:
		less = func(a, b Record) int { return cmp.Compare(a.Year, b.Year) }
	case SortPriceLow:
		less = func(a, b Record) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		less = func(a, b Record) int { return cmp.Compare(b.Price, a.Price) }
	case SortTitle:
		less = func(a, b Record) int { return coll.CompareString(a.Title, b.Title) }
	case SortRating:
		less = func(a, b Record) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return
	}
	slices.SortStableFunc(records, less)
}
