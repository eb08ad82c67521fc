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
	"fmt"
	"log/slog"
)

// Repository persists products.
type Repository interface {
	Insert(ctx context.Context, p Product) (Product, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ensure Manager implements Service at compile time.
var _ Service = (*Manager)(nil)

// Manager implements Service over a Repository.
type Manager struct {
	logger *slog.Logger
	repo   Repository
	refs   References
}

// NewManager creates a Manager. refs may be nil to skip reference checks.
func NewManager(
	logger *slog.Logger,
	repo Repository,
	refs References,
) *Manager {
	return &Manager{
		logger: logger,
		repo:   repo,
		refs:   refs,
	}
}

// Create adds a new product and returns it with its id.
func (m *Manager) Create(
	ctx context.Context,
	p Product,
) (Product, error) {
	if err := m.checkReferences(p); err != nil {
		return Product{}, err
	}

	p.ID = 0
	created, err := m.repo.Insert(ctx, p)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}

	m.logger.Debug("product created", slog.Int64("id", created.ID))

	return created, nil
}

// Update replaces the product with p.ID.
func (m *Manager) Update(
	ctx context.Context,
	p Product,
) (Product, error) {
	if err := m.checkReferences(p); err != nil {
		return Product{}, err
	}

	ok, err := m.repo.Update(ctx, p)
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	if !ok {
		return Product{}, fmt.Errorf("update product %d: %w", p.ID, ErrNotFound)
	}

	return p, nil
}

// Delete removes the product with id. A missing product is an error, so
// the audit trail never reports a deletion that did not happen.
func (m *Manager) Delete(
	ctx context.Context,
	id int64,
) (bool, error) {
	ok, err := m.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return false, fmt.Errorf("delete product %d: %w", id, ErrNotFound)
	}

	return true, nil
}

// Get returns the product with id.
func (m *Manager) Get(
	ctx context.Context,
	id int64,
) (Product, error) {
	p, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return Product{}, err
	}

	return *p, nil
}

// List returns all products.
func (m *Manager) List(
	ctx context.Context,
) ([]Product, error) {
	return m.repo.FindAll(ctx)
}

func (m *Manager) checkReferences(
	p Product,
) error {
	if m.refs == nil {
		return nil
	}

	if !m.refs.HasCategory(p.CategoryID) {
		return fmt.Errorf("category %d: %w", p.CategoryID, ErrInvalidReference)
	}
	if !m.refs.HasBrand(p.BrandID) {
		return fmt.Errorf("brand %d: %w", p.BrandID, ErrInvalidReference)
	}

	return nil
}
