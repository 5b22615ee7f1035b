// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package watch reloads the catalog when its asset file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"cinesou/internal/debounce"
)

// DefaultQuiet coalesces the burst of events an editor or deploy emits
// for a single save.
const DefaultQuiet = 500 * time.Millisecond

// File watches a single file and calls OnChange once per burst of
// writes, creates, renames or removals.
type File struct {
	path     string
	quiet    time.Duration
	onChange func(ctx context.Context)
	watcher  *fsnotify.Watcher
}

// New watches path. The parent directory is watched rather than the file
// itself so atomic replace-by-rename is seen.
func New(path string, quiet time.Duration, onChange func(ctx context.Context)) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &File{path: abs, quiet: quiet, onChange: onChange, watcher: w}, nil
}

// Run delivers change notifications until ctx is cancelled, then closes
// the underlying watcher.
func (f *File) Run(ctx context.Context) {
	trigger := debounce.New(f.quiet, func(struct{}) { f.onChange(ctx) })
	defer func() {
		trigger.Stop()
		if err := f.watcher.Close(); err != nil {
			slog.Error("catalog watcher close failed", "error", err)
		}
	}()

	slog.Info("watching catalog file", "path", f.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if !f.relevant(ev) {
				continue
			}
			slog.Debug("catalog file changed", "path", ev.Name, "op", ev.Op.String())
			trigger.Call(struct{}{})
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("catalog watcher error", "error", err)
		}
	}
}

func (f *File) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != f.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
