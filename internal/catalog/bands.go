// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PriceBand is an enumerated price range. Both bounds are inclusive;
// a nil Max leaves the band open at the top.
type PriceBand struct {
	Key   string   `yaml:"key" json:"key"`
	Label string   `yaml:"label" json:"label"`
	Min   float64  `yaml:"min" json:"min"`
	Max   *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Contains reports whether price falls inside the band.
func (b PriceBand) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == nil || price <= *b.Max
}

// YearBand is an enumerated release era covering [From, Until).
// A nil bound is unbounded on that side.
type YearBand struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	From  *int   `yaml:"from,omitempty" json:"from,omitempty"`
	Until *int   `yaml:"until,omitempty" json:"until,omitempty"`
}

// Contains reports whether year falls inside the era.
func (b YearBand) Contains(year int) bool {
	if b.From != nil && year < *b.From {
		return false
	}
	if b.Until != nil && year >= *b.Until {
		return false
	}
	return true
}

// Bands holds the price and year tables the filter UI offers.
type Bands struct {
	Price []PriceBand `yaml:"price" json:"price"`
	Year  []YearBand  `yaml:"year" json:"year"`
}

// DefaultBands returns the storefront's stock band tables.
func DefaultBands() Bands {
	return Bands{
		Price: []PriceBand{
			{Key: "0-5", Label: "$0 - $5", Min: 0, Max: ptr(5.0)},
			{Key: "5-10", Label: "$5 - $10", Min: 5, Max: ptr(10.0)},
			{Key: "10-15", Label: "$10 - $15", Min: 10, Max: ptr(15.0)},
			{Key: "15+", Label: "$15+", Min: 15},
		},
		Year: []YearBand{
			{Key: "2020s", Label: "2020s", From: ptr(2020)},
			{Key: "2010s", Label: "2010s", From: ptr(2010), Until: ptr(2020)},
			{Key: "2000s", Label: "2000s", From: ptr(2000), Until: ptr(2010)},
			{Key: "1990s", Label: "1990s", From: ptr(1990), Until: ptr(2000)},
			{Key: "classic", Label: "Classic (before 1990)", Until: ptr(1990)},
		},
	}
}

// PriceBand looks up a price band by key.
func (b Bands) PriceBand(key string) (PriceBand, bool) {
	for _, p := range b.Price {
		if p.Key == key {
			return p, true
		}
	}
	return PriceBand{}, false
}

// YearBand looks up a year band by key.
func (b Bands) YearBand(key string) (YearBand, bool) {
	for _, y := range b.Year {
		if y.Key == key {
			return y, true
		}
	}
	return YearBand{}, false
}

// Validate checks that keys are present and unique and that ranges are
// not inverted.
func (b Bands) Validate() error {
	seen := make(map[string]bool)
	for _, p := range b.Price {
		if p.Key == "" {
			return fmt.Errorf("price band with empty key")
		}
		if seen["price:"+p.Key] {
			return fmt.Errorf("duplicate price band %q", p.Key)
		}
		seen["price:"+p.Key] = true
		if p.Max != nil && *p.Max < p.Min {
			return fmt.Errorf("price band %q: max below min", p.Key)
		}
	}
	for _, y := range b.Year {
		if y.Key == "" {
			return fmt.Errorf("year band with empty key")
		}
		if seen["year:"+y.Key] {
			return fmt.Errorf("duplicate year band %q", y.Key)
		}
		seen["year:"+y.Key] = true
		if y.From != nil && y.Until != nil && *y.Until <= *y.From {
			return fmt.Errorf("year band %q: empty range", y.Key)
		}
	}
	return nil
}

// LoadBands decodes band tables from YAML of the form:
//
//	price:
//	  - {key: "0-5", label: "$0 - $5", min: 0, max: 5}
//	  - {key: "15+", label: "$15+", min: 15}
//	year:
//	  - {key: "2020s", label: "2020s", from: 2020}
func LoadBands(r io.Reader) (Bands, error) {
	var b Bands
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		return Bands{}, fmt.Errorf("decode bands: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Bands{}, fmt.Errorf("invalid bands: %w", err)
	}
	return b, nil
}

// LoadBandsFile reads band tables from a YAML file.
func LoadBandsFile(path string) (Bands, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bands{}, fmt.Errorf("open bands file: %w", err)
	}
	defer f.Close()
	return LoadBands(f)
}

func ptr[T any](v T) *T { return &v }
