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

// Package audit serves the read side of the audit trail.
package audit

import (
	"log/slog"

	auditstore "github.com/retr0h/bazaar/internal/audit"
)

// Audit implements the audit trail endpoints.
type Audit struct {
	// Store is the trail being read.
	Store auditstore.Store

	logger *slog.Logger
}

// ListResponse is the body of GET /audits.
type ListResponse struct {
	TotalItems int                `json:"total_items"`
	Items      []auditstore.Entry `json:"items"`
}

// EntryResponse is the body of GET /audits/:id.
type EntryResponse struct {
	Entry auditstore.Entry `json:"entry"`
}

// New creates the audit handler.
func New(
	logger *slog.Logger,
	store auditstore.Store,
) *Audit {
	return &Audit{
		Store:  store,
		logger: logger,
	}
}
