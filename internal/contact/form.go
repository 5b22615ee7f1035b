// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalid is returned by Submit when a field fails validation. The
	// submitter is not called.
	ErrInvalid = errors.New("contact form invalid")

	// ErrSubmission is returned by Submit when the submitter fails.
	ErrSubmission = errors.New("contact submission failed")

	// ErrBusy is returned by Submit while another submission is in flight.
	ErrBusy = errors.New("contact submission in progress")
)

// FieldState is the visible state of one input.
type FieldState struct {
	Value   string `json:"value"`
	Error   string `json:"error,omitempty"`
	Errored bool   `json:"errored"`
}

// State is a snapshot of the whole form.
type State struct {
	Fields  map[Field]FieldState `json:"fields"`
	Busy    bool                 `json:"busy"`
	Sent    bool                 `json:"sent"`
	Failure string               `json:"failure,omitempty"`
}

// Form tracks inputs, inline errors and the submit lifecycle. It is safe
// for concurrent use; at most one submission runs at a time.
type Form struct {
	mu      sync.Mutex
	fields  map[Field]FieldState
	busy    bool
	sent    bool
	failure string
}

// NewForm returns an empty form.
func NewForm() *Form {
	f := &Form{fields: make(map[Field]FieldState, len(Fields))}
	for _, name := range Fields {
		f.fields[name] = FieldState{}
	}
	return f
}

// Input records a changed value and clears the field's error, whether or
// not the new value is valid. Unknown fields are ignored.
func (f *Form) Input(field Field, value string) {
	if !KnownField(field) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[field] = FieldState{Value: value}
}

// Blur validates a single field and shows or clears its error.
func (f *Form) Blur(field Field) Result {
	if !KnownField(field) {
		return Result{Valid: true}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.fields[field]
	r := ValidateField(field, st.Value)
	f.setResult(field, r)
	return r
}

// Submit validates all fields and, if they pass, hands the values to s.
// The busy flag covers the submitter call and is always cleared after it.
func (f *Form) Submit(ctx context.Context, s Submitter) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	sub := f.submission()
	errs := Validate(sub)
	for _, name := range Fields {
		f.setResult(name, Result{Valid: errs[name] == "", Message: errs[name]})
	}
	if !errs.Valid() {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.busy = true
	f.failure = ""
	f.mu.Unlock()

	err := s.Submit(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.failure = MsgFailure
		return fmt.Errorf("%w: %w", ErrSubmission, err)
	}
	f.sent = true
	return nil
}

// State returns a copy of the form state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields := make(map[Field]FieldState, len(f.fields))
	for k, v := range f.fields {
		fields[k] = v
	}
	return State{Fields: fields, Busy: f.busy, Sent: f.sent, Failure: f.failure}
}

// setResult must be called with mu held.
func (f *Form) setResult(field Field, r Result) {
	st := f.fields[field]
	st.Error = r.Message
	st.Errored = !r.Valid
	f.fields[field] = st
}

func (f *Form) submission() Submission {
	return Submission{
		Name:    f.fields[FieldName].Value,
		Email:   f.fields[FieldEmail].Value,
		Subject: f.fields[FieldSubject].Value,
		Message: f.fields[FieldMessage].Value,
	}
}
