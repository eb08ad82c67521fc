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

package audit_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/audit"
)

// StoreContractTestSuite runs the same behaviour checks against every store
// backend. newStore must return an empty store.
type StoreContractTestSuite struct {
	suite.Suite

	newStore func() audit.Store
	store    audit.Store
	ctx      context.Context
}

func (s *StoreContractTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *StoreContractTestSuite) newEntry(
	actor string,
	action audit.Action,
	outcome audit.Outcome,
	subject *string,
) audit.Entry {
	return audit.Entry{
		CreatedAt:          time.Date(2026, 3, 1, 12, 0, 0, 123456000, time.UTC),
		Actor:              actor,
		Action:             action,
		Outcome:            outcome,
		SubjectDescription: subject,
		RequestID:          "req-1",
	}
}

func (s *StoreContractTestSuite) TestAppendAndFindByID() {
	subject := "test-record"
	in := s.newEntry("admin@example.com", audit.ActionAddProduct, audit.OutcomeSuccess, &subject)

	first, err := s.store.Append(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(int64(1), first.ID)

	second, err := s.store.Append(s.ctx, s.newEntry("", audit.ActionLogin, audit.OutcomeFail, nil))
	s.Require().NoError(err)
	s.Greater(second.ID, first.ID)

	tests := []struct {
		name         string
		id           int64
		validateFunc func(*audit.Entry, error)
	}{
		{
			name: "returns the stored entry",
			id:   first.ID,
			validateFunc: func(e *audit.Entry, err error) {
				s.Require().NoError(err)
				s.Require().NotNil(e)
				s.Equal(first.ID, e.ID)
				s.Equal("admin@example.com", e.Actor)
				s.Equal(audit.ActionAddProduct, e.Action)
				s.Equal(audit.OutcomeSuccess, e.Outcome)
				s.Require().NotNil(e.SubjectDescription)
				s.Equal("test-record", *e.SubjectDescription)
				s.Equal("req-1", e.RequestID)
				s.True(in.CreatedAt.Equal(e.CreatedAt))
			},
		},
		{
			name: "keeps an absent actor and subject absent",
			id:   second.ID,
			validateFunc: func(e *audit.Entry, err error) {
				s.Require().NoError(err)
				s.Empty(e.Actor)
				s.Nil(e.SubjectDescription)
				s.Equal(audit.ActionLogin, e.Action)
			},
		},
		{
			name: "unknown id is not found",
			id:   999,
			validateFunc: func(e *audit.Entry, err error) {
				s.ErrorIs(err, audit.ErrNotFound)
				s.Nil(e)
			},
		},
		{
			name: "zero id is not found",
			id:   0,
			validateFunc: func(e *audit.Entry, err error) {
				s.ErrorIs(err, audit.ErrNotFound)
				s.Nil(e)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			e, err := s.store.FindByID(s.ctx, tt.id)
			tt.validateFunc(e, err)
		})
	}
}

func (s *StoreContractTestSuite) TestFindAllAndFindByActor() {
	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)

	for _, actor := range []string{"a@example.com", "b@example.com", "a@example.com"} {
		_, err := s.store.Append(s.ctx, s.newEntry(actor, audit.ActionLogout, audit.OutcomeSuccess, nil))
		s.Require().NoError(err)
	}

	all, err = s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	for i := 1; i < len(all); i++ {
		s.Less(all[i-1].ID, all[i].ID)
	}

	byA, err := s.store.FindByActor(s.ctx, "a@example.com")
	s.Require().NoError(err)
	s.Require().Len(byA, 2)
	s.Equal(all[0].ID, byA[0].ID)
	s.Equal(all[2].ID, byA[1].ID)

	none, err := s.store.FindByActor(s.ctx, "nobody@example.com")
	s.Require().NoError(err)
	s.Empty(none)

	anonymous, err := s.store.Append(s.ctx, s.newEntry("", audit.ActionLogin, audit.OutcomeFail, nil))
	s.Require().NoError(err)

	byNobody, err := s.store.FindByActor(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(byNobody, 1)
	s.Equal(anonymous.ID, byNobody[0].ID)
	s.Empty(byNobody[0].Actor)
}

func (s *StoreContractTestSuite) TestUpdateAndDeleteAreRefused() {
	stored, err := s.store.Append(s.ctx, s.newEntry("a@example.com", audit.ActionLogin, audit.OutcomeSuccess, nil))
	s.Require().NoError(err)

	changed := stored
	changed.Outcome = audit.OutcomeFail

	ok, err := s.store.Update(s.ctx, changed)
	s.NoError(err)
	s.False(ok)

	ok, err = s.store.Delete(s.ctx, stored.ID)
	s.NoError(err)
	s.False(ok)

	got, err := s.store.FindByID(s.ctx, stored.ID)
	s.Require().NoError(err)
	s.Equal(audit.OutcomeSuccess, got.Outcome)
}

func (s *StoreContractTestSuite) TestConcurrentAppendsGetDistinctIDs() {
	const n = 20

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[int64]struct{}{}
	)

	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := s.store.Append(s.ctx, s.newEntry("a@example.com", audit.ActionAddProduct, audit.OutcomeSuccess, nil))
			if err != nil {
				return
			}
			mu.Lock()
			ids[e.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(ids, n)

	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, n)
}
