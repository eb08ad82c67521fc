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
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	auditapi "github.com/retr0h/bazaar/internal/api/audit"
	auditstore "github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/audit/mocks"
)

type AuditPublicTestSuite struct {
	suite.Suite

	mockCtrl  *gomock.Controller
	mockStore *mocks.MockStore
	handler   *auditapi.Audit
}

func (s *AuditPublicTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.mockCtrl)
	s.handler = auditapi.New(slog.Default(), s.mockStore)
}

func (s *AuditPublicTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AuditPublicTestSuite) serve(
	path string,
) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/audits", s.handler.GetAuditLogs)
	e.GET("/audits/:id", s.handler.GetAuditLogByID)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func sampleEntry(
	id int64,
	actor string,
) auditstore.Entry {
	subject := "Product with ID - 7 deleted success"
	return auditstore.Entry{
		ID:                 id,
		CreatedAt:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Actor:              actor,
		Action:             auditstore.ActionDeleteProduct,
		Outcome:            auditstore.OutcomeSuccess,
		SubjectDescription: &subject,
	}
}

func (s *AuditPublicTestSuite) TestGetAuditLogs() {
	tests := []struct {
		name         string
		path         string
		setup        func()
		wantStatus   int
		validateFunc func(body []byte)
	}{
		{
			name: "returns the full trail",
			path: "/audits",
			setup: func() {
				s.mockStore.EXPECT().FindAll(gomock.Any()).Return([]auditstore.Entry{
					sampleEntry(1, "a@example.com"),
					sampleEntry(2, "b@example.com"),
				}, nil)
			},
			wantStatus: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Equal(2, resp.TotalItems)
				s.Equal(int64(1), resp.Items[0].ID)
				s.Equal(int64(2), resp.Items[1].ID)
			},
		},
		{
			name: "empty trail is not found",
			path: "/audits",
			setup: func() {
				s.mockStore.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "filters by actor",
			path: "/audits?userEmail=a@example.com",
			setup: func() {
				s.mockStore.EXPECT().FindByActor(gomock.Any(), "a@example.com").
					Return([]auditstore.Entry{sampleEntry(1, "a@example.com")}, nil)
			},
			wantStatus: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Equal(1, resp.TotalItems)
				s.Equal("a@example.com", resp.Items[0].Actor)
			},
		},
		{
			name:       "rejects a malformed email",
			path:       "/audits?userEmail=not-an-email",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects an empty email",
			path:       "/audits?userEmail=",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "returns the requested page with the full total",
			path: "/audits?limit=2&offset=1",
			setup: func() {
				s.mockStore.EXPECT().FindAll(gomock.Any()).Return([]auditstore.Entry{
					sampleEntry(1, "a@example.com"),
					sampleEntry(2, "b@example.com"),
					sampleEntry(3, "c@example.com"),
					sampleEntry(4, "d@example.com"),
				}, nil)
			},
			wantStatus: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Equal(4, resp.TotalItems)
				s.Require().Len(resp.Items, 2)
				s.Equal(int64(2), resp.Items[0].ID)
				s.Equal(int64(3), resp.Items[1].ID)
			},
		},
		{
			name: "page past the end is empty but found",
			path: "/audits?userEmail=a@example.com&limit=10&offset=5",
			setup: func() {
				s.mockStore.EXPECT().FindByActor(gomock.Any(), "a@example.com").
					Return([]auditstore.Entry{sampleEntry(1, "a@example.com")}, nil)
			},
			wantStatus: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Equal(1, resp.TotalItems)
				s.Empty(resp.Items)
				s.NotNil(resp.Items)
			},
		},
		{
			name:       "rejects a zero limit",
			path:       "/audits?limit=0",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects a limit above the maximum",
			path:       "/audits?limit=1001",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects a negative offset",
			path:       "/audits?offset=-1",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects a non numeric limit",
			path:       "/audits?limit=all",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			validateFunc: func(body []byte) {
				s.Contains(string(body), "limit: must be an integer")
			},
		},
		{
			name: "store failure is a 500",
			path: "/audits",
			setup: func() {
				s.mockStore.EXPECT().FindAll(gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			validateFunc: func(body []byte) {
				s.NotContains(string(body), "connection refused")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setup()

			rec := s.serve(tt.path)

			s.Equal(tt.wantStatus, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func (s *AuditPublicTestSuite) TestGetAuditLogByID() {
	tests := []struct {
		name         string
		path         string
		setup        func()
		wantStatus   int
		validateFunc func(body []byte)
	}{
		{
			name: "returns the entry",
			path: "/audits/3",
			setup: func() {
				e := sampleEntry(3, "a@example.com")
				s.mockStore.EXPECT().FindByID(gomock.Any(), int64(3)).Return(&e, nil)
			},
			wantStatus: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp auditapi.EntryResponse
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Equal(int64(3), resp.Entry.ID)
				s.Equal(auditstore.ActionDeleteProduct, resp.Entry.Action)
			},
		},
		{
			name: "missing entry is not found",
			path: "/audits/4",
			setup: func() {
				s.mockStore.EXPECT().FindByID(gomock.Any(), int64(4)).
					Return(nil, auditstore.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non numeric id",
			path:       "/audits/abc",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero id",
			path:       "/audits/0",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure is a 500",
			path: "/audits/5",
			setup: func() {
				s.mockStore.EXPECT().FindByID(gomock.Any(), int64(5)).
					Return(nil, errors.New("timeout"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setup()

			rec := s.serve(tt.path)

			s.Equal(tt.wantStatus, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func (s *AuditPublicTestSuite) TestHandlerLeavesTrailUnchanged() {
	store := auditstore.NewMemoryStore()
	_, err := store.Append(context.Background(), sampleEntry(0, "a@example.com"))
	s.Require().NoError(err)

	s.handler = auditapi.New(slog.Default(), store)

	for range 3 {
		s.Equal(http.StatusOK, s.serve("/audits").Code)
	}

	entries, err := store.FindAll(context.Background())
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func TestAuditPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditPublicTestSuite))
}
