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

package audit

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/retr0h/bazaar/internal/audit"

// interceptorMetrics counts appended entries and append failures.
type interceptorMetrics struct {
	entries  metric.Int64Counter
	failures metric.Int64Counter
}

// newInterceptorMetrics registers the counters on the global meter provider.
// The otel API hands back a usable no-op instrument alongside any error, so
// errors are not fatal here.
func newInterceptorMetrics() *interceptorMetrics {
	meter := otel.Meter(meterName)

	entries, _ := meter.Int64Counter(
		"bazaar.audit.entries",
		metric.WithDescription("Audit entries appended, by action and outcome."),
	)

	failures, _ := meter.Int64Counter(
		"bazaar.audit.append_failures",
		metric.WithDescription("Audit entries that could not be appended."),
	)

	return &interceptorMetrics{
		entries:  entries,
		failures: failures,
	}
}

func (m *interceptorMetrics) recorded(
	ctx context.Context,
	entry Entry,
) {
	if m == nil || m.entries == nil {
		return
	}

	m.entries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(entry.Action)),
		attribute.String("outcome", string(entry.Outcome)),
	))
}

func (m *interceptorMetrics) appendFailed(
	ctx context.Context,
	entry Entry,
) {
	if m == nil || m.failures == nil {
		return
	}

	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(entry.Action)),
	))
}
