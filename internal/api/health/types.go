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

// Package health serves liveness, readiness and status probes.
package health

import (
	"context"
	"log/slog"
	"time"
)

// Checker reports whether the server's dependencies are usable.
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// Health implements the probe endpoints.
type Health struct {
	checker   Checker
	startTime time.Time
	version   string
	backend   string
	logger    *slog.Logger
}

// StatusResponse is the body of GET /health and GET /health/ready.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// DetailResponse is the body of GET /health/status.
type DetailResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	AuditBackend string `json:"audit_backend"`
}

// New creates the health handler. backend names the audit store in use,
// or "disabled".
func New(
	logger *slog.Logger,
	checker Checker,
	startTime time.Time,
	version string,
	backend string,
) *Health {
	return &Health{
		checker:   checker,
		startTime: startTime,
		version:   version,
		backend:   backend,
		logger:    logger,
	}
}
