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

package audit

import (
	"context"
	"sync"
)

// ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the trail in process memory. Ids are assigned in append
// order starting at 1.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append assigns the next id and stores a copy of entry.
func (s *MemoryStore) Append(
	_ context.Context,
	entry Entry,
) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := entry.clone()
	stored.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, stored)

	return stored.clone(), nil
}

// FindByID returns the entry with the given id.
func (s *MemoryStore) FindByID(
	_ context.Context,
	id int64,
) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 1 || id > int64(len(s.entries)) {
		return nil, ErrNotFound
	}

	entry := s.entries[id-1].clone()

	return &entry, nil
}

// FindAll returns every entry, oldest first.
func (s *MemoryStore) FindAll(
	_ context.Context,
) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.clone())
	}

	return out, nil
}

// FindByActor returns the entries recorded for actor, oldest first.
func (s *MemoryStore) FindByActor(
	_ context.Context,
	actor string,
) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Entry{}
	for _, e := range s.entries {
		if e.Actor == actor {
			out = append(out, e.clone())
		}
	}

	return out, nil
}

// Update is refused; the trail is append-only.
func (s *MemoryStore) Update(
	_ context.Context,
	_ Entry,
) (bool, error) {
	return false, nil
}

// Delete is refused; the trail is append-only.
func (s *MemoryStore) Delete(
	_ context.Context,
	_ int64,
) (bool, error) {
	return false, nil
}
