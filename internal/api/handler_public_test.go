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

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/retr0h/bazaar/internal/api"
	auditapi "github.com/retr0h/bazaar/internal/api/audit"
	"github.com/retr0h/bazaar/internal/api/health"
	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/authtoken"
	"github.com/retr0h/bazaar/internal/catalog"
	"github.com/retr0h/bazaar/internal/config"
	"github.com/retr0h/bazaar/internal/product"
	"github.com/retr0h/bazaar/internal/user"
	"github.com/retr0h/bazaar/internal/validation"
)

const (
	testSigningKey = "test-signing-key"
	adminEmail     = "admin@example.com"
	sellerEmail    = "seller@example.com"
	password       = "hunter2hunter2"
)

// HandlerPublicTestSuite drives the full HTTP stack with in-memory stores.
type HandlerPublicTestSuite struct {
	suite.Suite

	store  *audit.MemoryStore
	server *api.Server
	tokens *authtoken.Token
}

func (s *HandlerPublicTestSuite) SetupTest() {
	appConfig := config.Config{
		API: config.API{
			Server: config.Server{
				Security: config.ServerSecurity{
					SigningKey: testSigningKey,
				},
			},
		},
		Audit: config.Audit{
			Enabled: true,
			Backend: "memory",
		},
		Catalog: config.Catalog{
			Categories: []config.CatalogItem{{ID: 1, Name: "Tools"}},
			Brands:     []config.CatalogItem{{ID: 1, Name: "Acme"}},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.Require().NoError(err)

	cat := catalog.New(appConfig.Catalog)
	validation.RegisterCatalogValidators(cat)

	s.store = audit.NewMemoryStore()
	s.tokens = authtoken.New(slog.Default())
	ic := audit.NewInterceptor(slog.Default(), s.store)

	users := user.NewAuditedService(
		user.NewManager(slog.Default(), s.tokens, testSigningKey, time.Hour, []user.User{
			{Email: adminEmail, PasswordHash: string(hash), Roles: []string{"admin"}},
			{Email: sellerEmail, PasswordHash: string(hash), Roles: []string{"write"}},
		}),
		ic,
	)
	products := product.NewAuditedService(
		product.NewManager(slog.Default(), product.NewMemoryRepository(), cat),
		ic,
	)

	s.server = api.New(appConfig, slog.Default())

	handlers := make([]func(e *echo.Echo), 0, 6)
	handlers = append(handlers, s.server.GetAuthHandler(users)...)
	handlers = append(handlers, s.server.GetProductHandler(products)...)
	handlers = append(handlers, s.server.GetCatalogHandler(cat)...)
	handlers = append(handlers, s.server.GetAuditHandler(s.store)...)
	handlers = append(handlers, s.server.GetHealthHandler(
		&health.DependencyChecker{}, time.Now(), "test",
	)...)
	handlers = append(handlers, s.server.GetMetricsHandler(promhttp.Handler(), "/metrics")...)
	s.server.RegisterHandlers(handlers)
}

func (s *HandlerPublicTestSuite) do(
	method string,
	path string,
	token string,
	body string,
) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.server.Echo.ServeHTTP(rec, req)

	return rec
}

func (s *HandlerPublicTestSuite) login(
	email string,
) string {
	rec := s.do(http.MethodPost, "/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var sess user.Session
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &sess))

	return sess.Token
}

func (s *HandlerPublicTestSuite) entries() []audit.Entry {
	entries, err := s.store.FindAll(context.Background())
	s.Require().NoError(err)
	return entries
}

func (s *HandlerPublicTestSuite) TestProductLifecycleIsAudited() {
	token := s.login(sellerEmail)

	rec := s.do(http.MethodPost, "/products", token,
		`{"name":"Hammer","price_cents":1500,"category_id":1,"brand_id":1}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created product.Product
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.do(http.MethodPut, fmt.Sprintf("/products/%d", created.ID), token,
		`{"name":"Claw Hammer","price_cents":1700,"category_id":1,"brand_id":1}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), token, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), token, "")
	s.Equal(http.StatusNotFound, rec.Code)

	entries := s.entries()
	s.Require().Len(entries, 5)

	s.Equal(audit.ActionLogin, entries[0].Action)
	s.Nil(entries[0].SubjectDescription)

	s.Equal(audit.ActionAddProduct, entries[1].Action)
	s.Equal(audit.OutcomeSuccess, entries[1].Outcome)
	s.Require().NotNil(entries[1].SubjectDescription)
	s.Contains(*entries[1].SubjectDescription, `name="Hammer"`)

	s.Equal(audit.ActionUpdateProduct, entries[2].Action)
	s.Contains(*entries[2].SubjectDescription, `name="Claw Hammer"`)

	s.Equal(audit.ActionDeleteProduct, entries[3].Action)
	s.Equal(
		fmt.Sprintf("Product with ID - %d deleted success", created.ID),
		*entries[3].SubjectDescription,
	)

	s.Equal(audit.OutcomeFail, entries[4].Outcome)
	s.Equal(
		fmt.Sprintf("Product with ID - %d delete failed", created.ID),
		*entries[4].SubjectDescription,
	)

	for _, e := range entries {
		s.Equal(sellerEmail, e.Actor)
		s.NotEmpty(e.RequestID)
	}
}

func (s *HandlerPublicTestSuite) TestRequestIDIsRecorded() {
	req := httptest.NewRequest(
		http.MethodPost,
		"/auth/login",
		strings.NewReader(fmt.Sprintf(`{"email":%q,"password":"wrong"}`, adminEmail)),
	)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, "req-123")

	rec := httptest.NewRecorder()
	s.server.Echo.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	entries := s.entries()
	s.Require().Len(entries, 1)
	s.Equal("req-123", entries[0].RequestID)
	s.Equal(adminEmail, entries[0].Actor)
	s.Equal(audit.OutcomeFail, entries[0].Outcome)
}

func (s *HandlerPublicTestSuite) TestReadAPI() {
	adminToken := s.login(adminEmail)
	sellerToken := s.login(sellerEmail)

	tests := []struct {
		name         string
		path         string
		token        string
		validateFunc func(rec *httptest.ResponseRecorder)
	}{
		{
			name:  "lists the whole trail",
			path:  "/audits",
			token: adminToken,
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Require().Equal(http.StatusOK, rec.Code)

				var resp auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
				s.Equal(2, resp.TotalItems)
				s.Equal(adminEmail, resp.Items[0].Actor)
				s.Equal(sellerEmail, resp.Items[1].Actor)
			},
		},
		{
			name:  "filters by actor",
			path:  "/audits?userEmail=" + sellerEmail,
			token: adminToken,
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Require().Equal(http.StatusOK, rec.Code)

				var resp auditapi.ListResponse
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
				s.Equal(1, resp.TotalItems)
				s.Equal(sellerEmail, resp.Items[0].Actor)
			},
		},
		{
			name:  "unknown actor is not found",
			path:  "/audits?userEmail=nobody@example.com",
			token: adminToken,
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Equal(http.StatusNotFound, rec.Code)
			},
		},
		{
			name:  "single entry",
			path:  "/audits/1",
			token: adminToken,
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Require().Equal(http.StatusOK, rec.Code)

				var resp auditapi.EntryResponse
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
				s.Equal(int64(1), resp.Entry.ID)
				s.Equal(audit.ActionLogin, resp.Entry.Action)
			},
		},
		{
			name:  "missing entry is not found",
			path:  "/audits/99",
			token: adminToken,
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Equal(http.StatusNotFound, rec.Code)
			},
		},
		{
			name:  "seller may not read the trail",
			path:  "/audits",
			token: sellerToken,
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Equal(http.StatusForbidden, rec.Code)
			},
		},
		{
			name: "anonymous caller is rejected",
			path: "/audits",
			validateFunc: func(rec *httptest.ResponseRecorder) {
				s.Equal(http.StatusUnauthorized, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.validateFunc(s.do(http.MethodGet, tt.path, tt.token, ""))
		})
	}
}

func (s *HandlerPublicTestSuite) TestLogout() {
	token := s.login(adminEmail)

	rec := s.do(http.MethodPost, "/auth/logout", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), adminEmail)

	rec = s.do(http.MethodPost, "/auth/logout", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	entries := s.entries()
	s.Require().Len(entries, 2)
	s.Equal(audit.ActionLogout, entries[1].Action)
	s.Equal(adminEmail, entries[1].Actor)
	s.Nil(entries[1].SubjectDescription)
}

func (s *HandlerPublicTestSuite) TestPublicRoutes() {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "liveness",
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   `"ok"`,
		},
		{
			name:       "readiness",
			path:       "/health/ready",
			wantStatus: http.StatusOK,
			wantBody:   `"ready"`,
		},
		{
			name:       "status names the audit backend",
			path:       "/health/status",
			wantStatus: http.StatusOK,
			wantBody:   `"audit_backend":"memory"`,
		},
		{
			name:       "metrics",
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodGet, tt.path, "", "")
			s.Equal(tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				s.Contains(rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func (s *HandlerPublicTestSuite) TestCatalogRoutes() {
	token := s.login(sellerEmail)

	rec := s.do(http.MethodGet, "/categories", token, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"Tools"`)

	rec = s.do(http.MethodGet, "/brands", token, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"Acme"`)
}

func TestHandlerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerPublicTestSuite))
}
