// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service contains the article and category workflows. It sits
// between the HTTP handlers and the stores: handlers hand it validated
// identity and raw form input, it runs validation, permission checks and
// store calls, and reports the outcome as a Rejection instead of an error.
// Storage faults are logged here and surfaced as a generic failure, so
// handlers only ever branch on the rejection kind.
package service

// Kind classifies why an operation was refused.
type Kind int

const (
	// Invalid means the input failed validation; Fields lists the problems.
	Invalid Kind = iota
	// NotFound means the target entity does not exist (or is not visible
	// to the caller, for public reads).
	NotFound
	// Forbidden means the entity exists but the caller may not touch it.
	Forbidden
	// Failed means the storage layer misbehaved; the caller can only retry.
	Failed
)

// FieldError names one offending input field and why it was refused.
type FieldError struct {
	Field  string
	Reason string
}

// Rejection describes a refused operation. A nil *Rejection means success.
type Rejection struct {
	Kind   Kind
	Fields []FieldError
}

// Message renders a human-readable notice for the flash message.
func (r *Rejection) Message() string {
	switch r.Kind {
	case Invalid:
		if len(r.Fields) > 0 {
			return r.Fields[0].Field + ": " + r.Fields[0].Reason
		}
		return "Invalid input."
	case NotFound:
		return "Not found."
	case Forbidden:
		return "You do not have permission to do that."
	default:
		return "The operation failed. Please try again."
	}
}

func invalid(fields ...FieldError) *Rejection {
	return &Rejection{Kind: Invalid, Fields: fields}
}

func notFound() *Rejection  { return &Rejection{Kind: NotFound} }
func forbidden() *Rejection { return &Rejection{Kind: Forbidden} }
func failed() *Rejection    { return &Rejection{Kind: Failed} }
