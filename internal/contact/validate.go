// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact validates and submits the storefront contact form.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names one input of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Validation limits and messages.
const (
	minNameLen    = 2
	minMessageLen = 10

	MsgName    = "Name must be at least 2 characters long"
	MsgEmail   = "Please enter a valid email address"
	MsgSubject = "Please select a subject"
	MsgMessage = "Message must be at least 10 characters long"

	// MsgFailure is shown when the submission call fails.
	MsgFailure = "Failed to send message. Please try again."
)

// EmailRX accepts local@domain.tld shaped addresses.
var EmailRX = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of validating one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Submission holds the four form values.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Value returns the submitted value of f.
func (s Submission) Value(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	}
	return ""
}

// Errors maps invalid fields to their messages. An empty map means valid.
type Errors map[Field]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// KnownField reports whether f is one of the form inputs.
func KnownField(f Field) bool {
	switch f {
	case FieldName, FieldEmail, FieldSubject, FieldMessage:
		return true
	}
	return false
}

// ValidateField checks a single field. Unknown fields are always valid.
func ValidateField(f Field, value string) Result {
	trimmed := strings.TrimSpace(value)
	var ok bool
	var msg string

	switch f {
	case FieldName:
		ok, msg = utf8.RuneCountInString(trimmed) >= minNameLen, MsgName
	case FieldEmail:
		ok, msg = EmailRX.MatchString(trimmed), MsgEmail
	case FieldSubject:
		ok, msg = trimmed != "", MsgSubject
	case FieldMessage:
		ok, msg = utf8.RuneCountInString(trimmed) >= minMessageLen, MsgMessage
	default:
		return Result{Valid: true}
	}

	if ok {
		return Result{Valid: true}
	}
	return Result{Message: msg}
}

// Validate checks every field of s.
func Validate(s Submission) Errors {
	errs := make(Errors)
	for _, f := range Fields {
		if r := ValidateField(f, s.Value(f)); !r.Valid {
			errs[f] = r.Message
		}
	}
	return errs
}
