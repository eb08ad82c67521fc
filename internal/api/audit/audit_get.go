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
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/bazaar/internal/api/common"
	auditstore "github.com/retr0h/bazaar/internal/audit"
)

// GetAuditLogByID returns a single entry.
func (a *Audit) GetAuditLogByID(
	c echo.Context,
) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return common.Error(c, http.StatusBadRequest, "id must be a positive integer")
	}

	entry, err := a.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, auditstore.ErrNotFound) {
			return common.Error(c, http.StatusNotFound, "audit entry not found")
		}

		a.logger.ErrorContext(
			ctx,
			"failed to get audit entry",
			slog.String("error", err.Error()),
			slog.Int64("id", id),
		)
		return common.Error(c, http.StatusInternalServerError, "failed to get audit entry")
	}

	return c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}
