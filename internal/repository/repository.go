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

// Package repository defines the persistence contract shared by stores.
package repository

import "context"

// Repository is the generic read/update/delete contract implemented by every
// store. Update and Delete report whether anything changed; append-only
// stores always report false.
type Repository[T any, ID comparable] interface {
	// FindByID returns the record with the given id.
	FindByID(ctx context.Context, id ID) (*T, error)
	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]T, error)
	// Update replaces a stored record.
	Update(ctx context.Context, record T) (bool, error)
	// Delete removes the record with the given id.
	Delete(ctx context.Context, id ID) (bool, error)
}
