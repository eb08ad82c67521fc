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

package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readyTimeout = 2 * time.Second

// GetHealth is the liveness probe.
func (h *Health) GetHealth(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// GetHealthReady is the readiness probe. It fails with 503 while a
// dependency is unreachable.
func (h *Health) GetHealthReady(
	c echo.Context,
) error {
	if h.checker == nil {
		return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := h.checker.CheckHealth(ctx); err != nil {
		h.logger.WarnContext(
			ctx,
			"readiness check failed",
			slog.String("error", err.Error()),
		)
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{
			Status: "not_ready",
			Error:  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// GetHealthStatus reports version, uptime and audit backend.
func (h *Health) GetHealthStatus(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, DetailResponse{
		Status:       "ok",
		Version:      h.version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		AuditBackend: h.backend,
	})
}
