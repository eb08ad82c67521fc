// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package audit records who performed security-sensitive operations and
// whether they succeeded. Entries are append-only.
package audit

import (
	"errors"
	"time"
)

// Action is the closed set of auditable operation kinds.
type Action string

// Action values.
const (
	ActionLogin         Action = "LOGIN"
	ActionLogout        Action = "LOGOUT"
	ActionAddProduct    Action = "ADD_PRODUCT"
	ActionUpdateProduct Action = "UPDATE_PRODUCT"
	ActionDeleteProduct Action = "DELETE_PRODUCT"
)

// Outcome reports whether the wrapped operation succeeded.
type Outcome string

// Outcome values.
const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFail    Outcome = "FAIL"
)

// Entry represents a single audit trail record.
type Entry struct {
	// ID is assigned by the store on append. Zero until then.
	ID int64 `json:"id"`
	// CreatedAt is when the entry was opened, before the wrapped call ran.
	CreatedAt time.Time `json:"created_at"`
	// Actor is the email of whoever performed the action. Empty only for
	// login attempts that carried no identity.
	Actor string `json:"actor,omitempty"`
	// Action is the kind of operation performed.
	Action Action `json:"action"`
	// Outcome is SUCCESS or FAIL.
	Outcome Outcome `json:"outcome"`
	// SubjectDescription renders the affected record. Nil for LOGIN and LOGOUT.
	SubjectDescription *string `json:"subject_description"`
	// RequestID correlates the entry with the HTTP request that caused it.
	RequestID string `json:"request_id,omitempty"`
}

// TimestampPrecision is the resolution of Entry.CreatedAt. Postgres keeps
// microseconds, so every backend stores the same value.
const TimestampPrecision = time.Microsecond

var (
	// ErrNotFound is returned when no entry has the requested id.
	ErrNotFound = errors.New("audit entry not found")
	// ErrUnresolvedActor is returned when an operation that requires an
	// authenticated caller is invoked without one.
	ErrUnresolvedActor = errors.New("audit: actor could not be resolved")
	// ErrUnknownOperation is returned when an operation name matches no
	// auditable kind.
	ErrUnknownOperation = errors.New("audit: unknown operation")
)

func stringPtr(
	s string,
) *string {
	return &s
}
