// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"context"
	"errors"
	"time"
)

// Submitter delivers a validated submission.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return fn(ctx, s)
}

// SimulatedDelay is the default latency of Simulated.
const SimulatedDelay = 2 * time.Second

// Simulated pretends to send the message: it waits Delay and succeeds.
type Simulated struct {
	Delay time.Duration
}

// Submit implements Submitter.
func (s Simulated) Submit(ctx context.Context, _ Submission) error {
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Chain calls each submitter in order and stops at the first failure.
type Chain []Submitter

// Submit implements Submitter.
func (c Chain) Submit(ctx context.Context, s Submission) error {
	if len(c) == 0 {
		return errors.New("no submitter configured")
	}
	for _, sub := range c {
		if err := sub.Submit(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
