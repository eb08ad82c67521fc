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

package product

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/bazaar/internal/api/common"
	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/product"
	"github.com/retr0h/bazaar/internal/validation"
)

// GetProducts lists every product.
func (p *Product) GetProducts(
	c echo.Context,
) error {
	items, err := p.service.List(c.Request().Context())
	if err != nil {
		return p.internal(c, "failed to list products", err)
	}

	return c.JSON(http.StatusOK, ListResponse{
		TotalItems: len(items),
		Items:      items,
	})
}

// GetProductByID returns one product.
func (p *Product) GetProductByID(
	c echo.Context,
) error {
	id, ok := parseID(c)
	if !ok {
		return common.Error(c, http.StatusBadRequest, "id must be a positive integer")
	}

	item, err := p.service.Get(c.Request().Context(), id)
	if err != nil {
		return p.fail(c, "failed to get product", err)
	}

	return c.JSON(http.StatusOK, item)
}

// PostProduct creates a product.
func (p *Product) PostProduct(
	c echo.Context,
) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return common.Error(c, http.StatusBadRequest, "invalid request body")
	}

	if errMsg, ok := validation.Struct(req); !ok {
		return common.Error(c, http.StatusBadRequest, errMsg)
	}

	created, err := p.service.Create(c.Request().Context(), req.toProduct(0))
	if err != nil {
		return p.fail(c, "failed to create product", err)
	}

	return c.JSON(http.StatusCreated, created)
}

// PutProduct replaces a product.
func (p *Product) PutProduct(
	c echo.Context,
) error {
	id, ok := parseID(c)
	if !ok {
		return common.Error(c, http.StatusBadRequest, "id must be a positive integer")
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		return common.Error(c, http.StatusBadRequest, "invalid request body")
	}

	if errMsg, ok := validation.Struct(req); !ok {
		return common.Error(c, http.StatusBadRequest, errMsg)
	}

	updated, err := p.service.Update(c.Request().Context(), req.toProduct(id))
	if err != nil {
		return p.fail(c, "failed to update product", err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes a product.
func (p *Product) DeleteProduct(
	c echo.Context,
) error {
	id, ok := parseID(c)
	if !ok {
		return common.Error(c, http.StatusBadRequest, "id must be a positive integer")
	}

	deleted, err := p.service.Delete(c.Request().Context(), id)
	if err != nil {
		return p.fail(c, "failed to delete product", err)
	}

	return c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

// fail maps service errors onto status codes.
func (p *Product) fail(
	c echo.Context,
	msg string,
	err error,
) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return common.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, product.ErrInvalidReference):
		return common.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, audit.ErrUnresolvedActor):
		return common.Error(c, http.StatusUnauthorized, "caller could not be identified")
	default:
		return p.internal(c, msg, err)
	}
}

func (p *Product) internal(
	c echo.Context,
	msg string,
	err error,
) error {
	p.logger.ErrorContext(
		c.Request().Context(),
		msg,
		slog.String("error", err.Error()),
	)

	return common.Error(c, http.StatusInternalServerError, msg)
}

func parseID(
	c echo.Context,
) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}

	return id, true
}
