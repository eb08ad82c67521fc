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

// Package catalog serves the read-only category and brand lists.
package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/bazaar/internal/catalog"
)

// Catalog implements the catalog endpoints.
type Catalog struct {
	catalog *catalog.Catalog
}

// ListResponse is the body of GET /categories and GET /brands.
type ListResponse struct {
	TotalItems int            `json:"total_items"`
	Items      []catalog.Item `json:"items"`
}

// New creates the catalog handler.
func New(
	c *catalog.Catalog,
) *Catalog {
	return &Catalog{catalog: c}
}

// GetCategories lists the categories.
func (h *Catalog) GetCategories(
	c echo.Context,
) error {
	items := h.catalog.Categories()
	return c.JSON(http.StatusOK, ListResponse{TotalItems: len(items), Items: items})
}

// GetBrands lists the brands.
func (h *Catalog) GetBrands(
	c echo.Context,
) error {
	items := h.catalog.Brands()
	return c.JSON(http.StatusOK, ListResponse{TotalItems: len(items), Items: items})
}
