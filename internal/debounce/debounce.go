// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package debounce coalesces bursts of calls into a single trailing call
// that fires once the caller has been quiet for a fixed period.
package debounce

import (
	"sync"
	"time"
)

// Func wraps fn so that repeated calls within wait of each other collapse
// into one invocation carrying the most recent argument. Each Call resets
// the timer; it is never extended cumulatively.
type Func[T any] struct {
	mu      sync.Mutex
	wait    time.Duration
	fn      func(T)
	timer   *time.Timer
	pending bool
	last    T
	seq     uint64
}

// New returns a debounced wrapper around fn.
func New[T any](wait time.Duration, fn func(T)) *Func[T] {
	return &Func[T]{wait: wait, fn: fn}
}

// Call records v as the latest argument and restarts the quiet period.
func (d *Func[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.last = v
	d.pending = true
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.wait, func() { d.fire(seq) })
}

// fire runs fn if no newer Call or Stop happened since the timer was armed.
func (d *Func[T]) fire(seq uint64) {
	d.mu.Lock()
	if !d.pending || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.last
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Stop discards a pending call. It reports whether one was pending.
func (d *Func[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	was := d.pending
	d.pending = false
	d.seq++
	return was
}

// Flush runs a pending call immediately instead of waiting for the timer.
// It reports whether anything was flushed.
func (d *Func[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.last
	d.pending = false
	d.seq++
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Pending reports whether a call is waiting for the quiet period to end.
func (d *Func[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
