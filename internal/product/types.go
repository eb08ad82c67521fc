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

// Package product manages the marketplace's product listings.
package product

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidReference is returned when a product points at a category
	// or brand that does not exist.
	ErrInvalidReference = errors.New("product references unknown category or brand")
)

// Product is a listing offered for sale.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	CategoryID  int64  `json:"category_id"`
	BrandID     int64  `json:"brand_id"`
}

// String renders the product for the audit trail.
func (p Product) String() string {
	return fmt.Sprintf(
		"Product{id=%d, name=%q, price_cents=%d, category_id=%d, brand_id=%d}",
		p.ID, p.Name, p.PriceCents, p.CategoryID, p.BrandID,
	)
}

// Service is the product use-case surface.
type Service interface {
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context) ([]Product, error)
}

// References reports whether category and brand ids exist.
type References interface {
	HasCategory(id int64) bool
	HasBrand(id int64) bool
}
