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

	"github.com/retr0h/bazaar/internal/audit"
)

// ensure AuditedService implements Service at compile time.
var _ Service = (*AuditedService)(nil)

// AuditedService records every mutating call in the audit trail. Reads
// pass straight through.
type AuditedService struct {
	next Service
	ic   *audit.Interceptor

	create audit.Operation
	update audit.Operation
	remove audit.Operation
}

// NewAuditedService wraps next. A nil interceptor records nothing.
func NewAuditedService(
	next Service,
	ic *audit.Interceptor,
) *AuditedService {
	return &AuditedService{
		next:   next,
		ic:     ic,
		create: audit.MustOperation("createProduct"),
		update: audit.MustOperation("updateProduct"),
		remove: audit.MustOperation("deleteProduct"),
	}
}

// Create is recorded as ADD_PRODUCT.
func (s *AuditedService) Create(
	ctx context.Context,
	p Product,
) (Product, error) {
	return audit.Run(ctx, s.ic, s.create, p, func(ctx context.Context) (Product, error) {
		return s.next.Create(ctx, p)
	})
}

// Update is recorded as UPDATE_PRODUCT.
func (s *AuditedService) Update(
	ctx context.Context,
	p Product,
) (Product, error) {
	return audit.Run(ctx, s.ic, s.update, p, func(ctx context.Context) (Product, error) {
		return s.next.Update(ctx, p)
	})
}

// Delete is recorded as DELETE_PRODUCT.
func (s *AuditedService) Delete(
	ctx context.Context,
	id int64,
) (bool, error) {
	return audit.Run(ctx, s.ic, s.remove, id, func(ctx context.Context) (bool, error) {
		return s.next.Delete(ctx, id)
	})
}

// Get is not audited.
func (s *AuditedService) Get(
	ctx context.Context,
	id int64,
) (Product, error) {
	return s.next.Get(ctx, id)
}

// List is not audited.
func (s *AuditedService) List(
	ctx context.Context,
) ([]Product, error) {
	return s.next.List(ctx)
}
