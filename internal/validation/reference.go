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

package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// CatalogLookup reports whether reference ids exist.
type CatalogLookup interface {
	HasCategory(id int64) bool
	HasBrand(id int64) bool
}

var (
	lookupMu sync.RWMutex
	lookup   CatalogLookup
)

// RegisterCatalogValidators registers the known_category and known_brand
// tags and sets the lookup they consult. Call this at API server startup,
// or in test SetupSuite to inject a fixed catalog.
func RegisterCatalogValidators(
	l CatalogLookup,
) {
	// Cannot error: tags are non-empty and functions are non-nil.
	_ = instance.RegisterValidation("known_category", knownCategory)
	_ = instance.RegisterValidation("known_brand", knownBrand)

	lookupMu.Lock()
	lookup = l
	lookupMu.Unlock()
}

func currentLookup() CatalogLookup {
	lookupMu.RLock()
	defer lookupMu.RUnlock()

	return lookup
}

func knownCategory(
	fl validator.FieldLevel,
) bool {
	l := currentLookup()
	return l != nil && l.HasCategory(fl.Field().Int())
}

func knownBrand(
	fl validator.FieldLevel,
) bool {
	l := currentLookup()
	return l != nil && l.HasBrand(fl.Field().Int())
}
