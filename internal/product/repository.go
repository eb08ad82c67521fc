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
	"context"
	"sort"
	"sync"

	"github.com/retr0h/bazaar/internal/repository"
)

// ensure MemoryRepository implements repository.Repository at compile time.
var _ repository.Repository[Product, int64] = (*MemoryRepository)(nil)

// MemoryRepository keeps products in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	lastID   int64
	products map[int64]Product
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products: make(map[int64]Product),
	}
}

// Insert stores p under a fresh id.
func (r *MemoryRepository) Insert(
	_ context.Context,
	p Product,
) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	p.ID = r.lastID
	r.products[p.ID] = p

	return p, nil
}

// FindByID returns the product with id.
func (r *MemoryRepository) FindByID(
	_ context.Context,
	id int64,
) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &p, nil
}

// FindAll returns every product ordered by id.
func (r *MemoryRepository) FindAll(
	_ context.Context,
) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// Update replaces an existing product. It reports false when p.ID is unknown.
func (r *MemoryRepository) Update(
	_ context.Context,
	p Product,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return false, nil
	}
	r.products[p.ID] = p

	return true, nil
}

// Delete removes a product. It reports false when id is unknown.
func (r *MemoryRepository) Delete(
	_ context.Context,
	id int64,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)

	return true, nil
}
