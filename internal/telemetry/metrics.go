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

package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/retr0h/bazaar/internal/config"
)

// prometheusNewFn is replaced in tests to simulate exporter failures.
var prometheusNewFn = prometheus.New

// DefaultMetricsPath is where the scrape endpoint is mounted by default.
const DefaultMetricsPath = "/metrics"

// Metrics is an installed meter provider and its scrape endpoint.
type Metrics struct {
	// Handler serves the Prometheus exposition format.
	Handler http.Handler
	// Path is where Handler should be mounted.
	Path string
	// Shutdown stops the meter provider.
	Shutdown func(context.Context) error
}

// InitMeter installs a global meter provider backed by a Prometheus
// exporter. Audit entry counters registered afterwards are exposed through
// the returned handler.
func InitMeter(
	cfg config.MetricsConfig,
) (*Metrics, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultMetricsPath
	}

	exporter, err := prometheusNewFn()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(
			semconv.ServiceNameKey.String(ServiceName),
		)),
	)
	otel.SetMeterProvider(mp)

	return &Metrics{
		Handler:  promhttp.Handler(),
		Path:     path,
		Shutdown: mp.Shutdown,
	}, nil
}
