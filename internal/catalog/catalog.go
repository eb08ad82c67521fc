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

// Package catalog serves the categories and brands products refer to.
package catalog

import (
	"sort"

	"github.com/retr0h/bazaar/internal/config"
)

// Item is a category or a brand.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog is a read-only set of categories and brands.
type Catalog struct {
	categories map[int64]Item
	brands     map[int64]Item
}

// New builds a Catalog from configuration.
func New(
	cfg config.Catalog,
) *Catalog {
	return &Catalog{
		categories: index(cfg.Categories),
		brands:     index(cfg.Brands),
	}
}

// Categories returns all categories ordered by id.
func (c *Catalog) Categories() []Item {
	return sorted(c.categories)
}

// Brands returns all brands ordered by id.
func (c *Catalog) Brands() []Item {
	return sorted(c.brands)
}

// HasCategory reports whether a category with id exists.
func (c *Catalog) HasCategory(
	id int64,
) bool {
	_, ok := c.categories[id]
	return ok
}

// HasBrand reports whether a brand with id exists.
func (c *Catalog) HasBrand(
	id int64,
) bool {
	_, ok := c.brands[id]
	return ok
}

func index(
	items []config.CatalogItem,
) map[int64]Item {
	out := make(map[int64]Item, len(items))
	for _, it := range items {
		out[it.ID] = Item{ID: it.ID, Name: it.Name}
	}
	return out
}

func sorted(
	m map[int64]Item,
) []Item {
	out := make([]Item, 0, len(m))
	for _, it := range m {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
