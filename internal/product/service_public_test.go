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

package product_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/product"
)

type refs struct{}

func (refs) HasCategory(id int64) bool { return id == 1 }

func (refs) HasBrand(id int64) bool { return id == 1 }

type ManagerPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	manager *product.Manager
}

func (s *ManagerPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.manager = product.NewManager(slog.Default(), product.NewMemoryRepository(), refs{})
}

func (s *ManagerPublicTestSuite) widget() product.Product {
	return product.Product{
		Name:        "Widget",
		Description: "A widget",
		PriceCents:  1999,
		CategoryID:  1,
		BrandID:     1,
	}
}

func (s *ManagerPublicTestSuite) TestCreate() {
	tests := []struct {
		name         string
		input        product.Product
		validateFunc func(product.Product, error)
	}{
		{
			name:  "assigns an id",
			input: s.widget(),
			validateFunc: func(p product.Product, err error) {
				s.NoError(err)
				s.Equal(int64(1), p.ID)
				s.Equal("Widget", p.Name)
			},
		},
		{
			name: "ignores a caller supplied id",
			input: func() product.Product {
				p := s.widget()
				p.ID = 99
				return p
			}(),
			validateFunc: func(p product.Product, err error) {
				s.NoError(err)
				s.Equal(int64(1), p.ID)
			},
		},
		{
			name: "rejects an unknown category",
			input: func() product.Product {
				p := s.widget()
				p.CategoryID = 5
				return p
			}(),
			validateFunc: func(_ product.Product, err error) {
				s.ErrorIs(err, product.ErrInvalidReference)
				s.Contains(err.Error(), "category 5")
			},
		},
		{
			name: "rejects an unknown brand",
			input: func() product.Product {
				p := s.widget()
				p.BrandID = 5
				return p
			}(),
			validateFunc: func(_ product.Product, err error) {
				s.ErrorIs(err, product.ErrInvalidReference)
				s.Contains(err.Error(), "brand 5")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			p, err := s.manager.Create(s.ctx, tt.input)
			tt.validateFunc(p, err)
		})
	}
}

func (s *ManagerPublicTestSuite) TestUpdate() {
	created, err := s.manager.Create(s.ctx, s.widget())
	s.Require().NoError(err)

	created.PriceCents = 2499
	updated, err := s.manager.Update(s.ctx, created)
	s.Require().NoError(err)
	s.Equal(int64(2499), updated.PriceCents)

	got, err := s.manager.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(int64(2499), got.PriceCents)

	missing := created
	missing.ID = 42
	_, err = s.manager.Update(s.ctx, missing)
	s.ErrorIs(err, product.ErrNotFound)
}

func (s *ManagerPublicTestSuite) TestDelete() {
	created, err := s.manager.Create(s.ctx, s.widget())
	s.Require().NoError(err)

	ok, err := s.manager.Delete(s.ctx, created.ID)
	s.NoError(err)
	s.True(ok)

	ok, err = s.manager.Delete(s.ctx, created.ID)
	s.ErrorIs(err, product.ErrNotFound)
	s.False(ok)

	_, err = s.manager.Get(s.ctx, created.ID)
	s.ErrorIs(err, product.ErrNotFound)
}

func (s *ManagerPublicTestSuite) TestList() {
	for range 3 {
		_, err := s.manager.Create(s.ctx, s.widget())
		s.Require().NoError(err)
	}

	all, err := s.manager.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})
}

func (s *ManagerPublicTestSuite) TestString() {
	p := s.widget()
	p.ID = 3
	s.Equal(
		`Product{id=3, name="Widget", price_cents=1999, category_id=1, brand_id=1}`,
		p.String(),
	)
}

func TestManagerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerPublicTestSuite))
}
