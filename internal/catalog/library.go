// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Library is the shared, reloadable copy of the record set. Request
// handlers take a private Engine from it, so concurrent requests never
// share view state.
type Library struct {
	mu       sync.RWMutex
	loader   Loader
	records  []Record
	index    map[string]int
	loaded   bool
	version  uint64
	err      error
	pageSize int
	bands    Bands
}

// NewLibrary creates an empty library that loads from loader.
func NewLibrary(loader Loader, pageSize int, bands Bands) *Library {
	return &Library{
		loader:   loader,
		index:    make(map[string]int),
		pageSize: pageSize,
		bands:    bands,
	}
}

// Reload fetches the record set again. On failure the previous set is
// kept, the error is remembered for Err, and ErrDataLoad is returned.
func (l *Library) Reload(ctx context.Context) error {
	records, err := l.loader.Load(ctx)
	if err == nil {
		var index map[string]int
		index, err = indexRecords(records)
		if err == nil {
			l.mu.Lock()
			l.records = slices.Clone(records)
			l.index = index
			l.loaded = true
			l.version++
			l.err = nil
			version := l.version
			l.mu.Unlock()

			slog.Info("catalog loaded", "records", len(records), "version", version)
			return nil
		}
	}

	loadErr := fmt.Errorf("%w: %w", ErrDataLoad, err)
	l.mu.Lock()
	l.err = loadErr
	l.mu.Unlock()

	slog.Error("catalog load failed", "error", err)
	return loadErr
}

// Engine returns a fresh engine over the current record set. It fails
// only when no set has ever loaded and the last attempt errored.
func (l *Library) Engine() (*Engine, error) {
	l.mu.RLock()
	records, loaded, err := l.records, l.loaded, l.err
	l.mu.RUnlock()

	if !loaded && err != nil {
		return nil, err
	}
	e := New(l.pageSize, l.bands)
	if err := e.Load(records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	return e, nil
}

// Find resolves a record by ID.
func (l *Library) Find(id string) (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[id]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// Version increases on every successful reload. Response caches key on it.
func (l *Library) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Err returns the most recent load failure, or nil after a success.
func (l *Library) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Len returns the number of loaded records.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Bands returns the configured band tables.
func (l *Library) Bands() Bands { return l.bands }
