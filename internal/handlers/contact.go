// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"cinesou/internal/contact"
)

// Contact serves per-field validation and form submission.
type Contact struct {
	submitter contact.Submitter
}

// NewContact creates the contact handler group.
func NewContact(submitter contact.Submitter) *Contact {
	return &Contact{submitter: submitter}
}

type fieldRequest struct {
	Field contact.Field `json:"field"`
	Value string        `json:"value"`
}

// Validate checks one field as the visitor leaves it.
func (c *Contact) Validate(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !contact.KnownField(req.Field) {
		writeError(w, http.StatusBadRequest, "unknown field")
		return
	}
	writeJSON(w, http.StatusOK, contact.ValidateField(req.Field, req.Value))
}

// Submit validates all four fields and hands them to the submitter. The
// response is the resulting form state: per-field errors on 422, the
// generic failure message on 502, sent on 200.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	form := contact.NewForm()
	for _, f := range contact.Fields {
		form.Input(f, sub.Value(f))
	}

	err := form.Submit(r.Context(), c.submitter)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		writeJSON(w, http.StatusUnprocessableEntity, form.State())
	case err != nil:
		slog.Error("contact submission failed", "error", err)
		writeJSON(w, http.StatusBadGateway, form.State())
	default:
		slog.Info("contact message received", "subject", sub.Subject)
		writeJSON(w, http.StatusOK, form.State())
	}
}
