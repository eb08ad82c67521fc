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

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/catalog"
	"github.com/retr0h/bazaar/internal/config"
)

type CatalogPublicTestSuite struct {
	suite.Suite

	catalog *catalog.Catalog
}

func (s *CatalogPublicTestSuite) SetupTest() {
	s.catalog = catalog.New(config.Catalog{
		Categories: []config.CatalogItem{{ID: 2, Name: "Games"}, {ID: 1, Name: "Books"}},
		Brands:     []config.CatalogItem{{ID: 7, Name: "Acme"}},
	})
}

func (s *CatalogPublicTestSuite) TestLists() {
	s.Equal([]catalog.Item{{ID: 1, Name: "Books"}, {ID: 2, Name: "Games"}}, s.catalog.Categories())
	s.Equal([]catalog.Item{{ID: 7, Name: "Acme"}}, s.catalog.Brands())
}

func (s *CatalogPublicTestSuite) TestLookups() {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "known category", got: s.catalog.HasCategory(1), want: true},
		{name: "unknown category", got: s.catalog.HasCategory(7), want: false},
		{name: "known brand", got: s.catalog.HasBrand(7), want: true},
		{name: "unknown brand", got: s.catalog.HasBrand(1), want: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, tt.got)
		})
	}
}

func (s *CatalogPublicTestSuite) TestEmpty() {
	empty := catalog.New(config.Catalog{})
	s.Empty(empty.Categories())
	s.Empty(empty.Brands())
	s.False(empty.HasCategory(1))
}

func TestCatalogPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogPublicTestSuite))
}
