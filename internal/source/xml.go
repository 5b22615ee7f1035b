// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package source loads the movie catalog asset from disk, over HTTP or
// from S3-compatible object storage.
package source

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cinesou/internal/catalog"
)

type xmlCatalog struct {
	XMLName xml.Name   `xml:"movies"`
	Movies  []xmlMovie `xml:"movie"`
}

type xmlMovie struct {
	ID          string `xml:"id,attr"`
	Title       string `xml:"title"`
	Year        string `xml:"year"`
	Genre       string `xml:"genre"`
	Director    string `xml:"director"`
	Rating      string `xml:"rating"`
	Price       string `xml:"price"`
	Poster      string `xml:"poster"`
	Description string `xml:"description"`
	Featured    string `xml:"featured"`
}

// ParseXML decodes a <movies> document into records in document order.
// A record is featured only when its <featured> element is exactly "true".
func ParseXML(r io.Reader) ([]catalog.Record, error) {
	var doc xmlCatalog
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog xml: %w", err)
	}

	records := make([]catalog.Record, 0, len(doc.Movies))
	for i, m := range doc.Movies {
		rec, err := m.record()
		if err != nil {
			return nil, fmt.Errorf("movie %d (id %q): %w", i+1, m.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (m xmlMovie) record() (catalog.Record, error) {
	if strings.TrimSpace(m.ID) == "" {
		return catalog.Record{}, fmt.Errorf("missing id attribute")
	}
	year, err := strconv.Atoi(strings.TrimSpace(m.Year))
	if err != nil {
		return catalog.Record{}, fmt.Errorf("year: %w", err)
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(m.Rating), 64)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("rating: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(m.Price), 64)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("price: %w", err)
	}
	return catalog.Record{
		ID:          strings.TrimSpace(m.ID),
		Title:       m.Title,
		Year:        year,
		Genre:       m.Genre,
		Director:    m.Director,
		Rating:      rating,
		Price:       price,
		Poster:      m.Poster,
		Description: m.Description,
		Featured:    m.Featured == "true",
	}, nil
}

// EncodeXML writes records as a <movies> document that ParseXML reads back.
func EncodeXML(w io.Writer, records []catalog.Record) error {
	doc := xmlCatalog{Movies: make([]xmlMovie, 0, len(records))}
	for _, r := range records {
		doc.Movies = append(doc.Movies, xmlMovie{
			ID:          r.ID,
			Title:       r.Title,
			Year:        strconv.Itoa(r.Year),
			Genre:       r.Genre,
			Director:    r.Director,
			Rating:      strconv.FormatFloat(r.Rating, 'f', -1, 64),
			Price:       catalog.FormatPrice(r.Price),
			Poster:      r.Poster,
			Description: r.Description,
			Featured:    strconv.FormatBool(r.Featured),
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode catalog xml: %w", err)
	}
	return nil
}
