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

// Package product serves the product listing endpoints.
package product

import (
	"log/slog"

	"github.com/retr0h/bazaar/internal/product"
)

// Product implements the product endpoints.
type Product struct {
	service product.Service
	logger  *slog.Logger
}

// Request is the body of POST /products and PUT /products/:id.
type Request struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0,known_category"`
	BrandID     int64  `json:"brand_id"    validate:"required,gt=0,known_brand"`
}

// ListResponse is the body of GET /products.
type ListResponse struct {
	TotalItems int               `json:"total_items"`
	Items      []product.Product `json:"items"`
}

// DeleteResponse is the body of DELETE /products/:id.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// New creates the product handler. service is expected to be the audited
// decorator so every mutation lands in the trail.
func New(
	logger *slog.Logger,
	service product.Service,
) *Product {
	return &Product{
		service: service,
		logger:  logger,
	}
}

func (r Request) toProduct(
	id int64,
) product.Product {
	return product.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
	}
}
