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
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/bazaar/internal/api/common"
	auditstore "github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/validation"
)

// MaxPageSize bounds ?limit= on GET /audits.
const MaxPageSize = 1000

// GetAuditLogs returns the whole trail in insertion order, or only the
// entries of one actor when ?userEmail= is given. ?limit= and ?offset=
// select a page; total_items always counts the full result. An empty trail
// is a 404, a page past the end of a non-empty trail is an empty 200.
func (a *Audit) GetAuditLogs(
	c echo.Context,
) error {
	ctx := c.Request().Context()

	limit, errMsg, ok := intParam(c, "limit", "gte=1,lte="+strconv.Itoa(MaxPageSize))
	if !ok {
		return common.Error(c, http.StatusBadRequest, errMsg)
	}

	offset, errMsg, ok := intParam(c, "offset", "gte=0")
	if !ok {
		return common.Error(c, http.StatusBadRequest, errMsg)
	}

	var (
		entries []auditstore.Entry
		err     error
	)

	if c.QueryParams().Has("userEmail") {
		email := c.QueryParam("userEmail")
		if errMsg, ok := validation.Var(email, "required,email"); !ok {
			return common.Error(c, http.StatusBadRequest, "userEmail: "+errMsg)
		}

		entries, err = a.Store.FindByActor(ctx, email)
	} else {
		entries, err = a.Store.FindAll(ctx)
	}

	if err != nil {
		a.logger.ErrorContext(
			ctx,
			"failed to list audit entries",
			slog.String("error", err.Error()),
		)
		return common.Error(c, http.StatusInternalServerError, "failed to list audit entries")
	}

	if len(entries) == 0 {
		return common.Error(c, http.StatusNotFound, "no audit entries found")
	}

	return c.JSON(http.StatusOK, ListResponse{
		TotalItems: len(entries),
		Items:      page(entries, limit, offset),
	})
}

// intParam reads an optional integer query parameter. A missing parameter
// yields zero.
func intParam(
	c echo.Context,
	name string,
	tag string,
) (int, string, bool) {
	if !c.QueryParams().Has(name) {
		return 0, "", true
	}

	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0, name + ": must be an integer", false
	}

	if errMsg, ok := validation.Var(v, tag); !ok {
		return 0, name + ": " + errMsg, false
	}

	return v, "", true
}

// page slices entries; a zero limit means no upper bound.
func page(
	entries []auditstore.Entry,
	limit int,
	offset int,
) []auditstore.Entry {
	if offset >= len(entries) {
		return []auditstore.Entry{}
	}

	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return entries[offset:end]
}
