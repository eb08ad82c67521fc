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

package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	auditapi "github.com/retr0h/bazaar/internal/api/audit"
	authapi "github.com/retr0h/bazaar/internal/api/auth"
	catalogapi "github.com/retr0h/bazaar/internal/api/catalog"
	"github.com/retr0h/bazaar/internal/api/health"
	productapi "github.com/retr0h/bazaar/internal/api/product"
	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/authtoken"
	"github.com/retr0h/bazaar/internal/catalog"
	"github.com/retr0h/bazaar/internal/product"
	"github.com/retr0h/bazaar/internal/user"
)

// GetAuditHandler returns the audit trail routes. Reading the trail
// requires audit:read.
func (s *Server) GetAuditHandler(
	store audit.Store,
) []func(e *echo.Echo) {
	h := auditapi.New(s.logger, store)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/audits", s.scope(authtoken.PermAuditRead))
			g.GET("", h.GetAuditLogs)
			g.GET("/:id", h.GetAuditLogByID)
		},
	}
}

// GetProductHandler returns the product routes.
func (s *Server) GetProductHandler(
	service product.Service,
) []func(e *echo.Echo) {
	h := productapi.New(s.logger, service)
	read := s.scope(authtoken.PermProductRead)
	write := s.scope(authtoken.PermProductWrite)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.GET("/products", h.GetProducts, read)
			e.GET("/products/:id", h.GetProductByID, read)
			e.POST("/products", h.PostProduct, write)
			e.PUT("/products/:id", h.PutProduct, write)
			e.DELETE("/products/:id", h.DeleteProduct, write)
		},
	}
}

// GetCatalogHandler returns the category and brand routes.
func (s *Server) GetCatalogHandler(
	c *catalog.Catalog,
) []func(e *echo.Echo) {
	h := catalogapi.New(c)
	read := s.scope(authtoken.PermProductRead)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.GET("/categories", h.GetCategories, read)
			e.GET("/brands", h.GetBrands, read)
		},
	}
}

// GetAuthHandler returns the login and logout routes. Login is public;
// logout needs any valid token.
func (s *Server) GetAuthHandler(
	service user.Service,
) []func(e *echo.Echo) {
	h := authapi.New(s.logger, service)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.POST("/auth/login", h.PostLogin)
			e.POST("/auth/logout", h.PostLogout, s.scope())
		},
	}
}

// GetHealthHandler returns the unauthenticated probe routes.
func (s *Server) GetHealthHandler(
	checker health.Checker,
	startTime time.Time,
	version string,
) []func(e *echo.Echo) {
	backend := "disabled"
	if s.appConfig.Audit.Enabled {
		backend = s.appConfig.Audit.Backend
	}

	h := health.New(s.logger, checker, startTime, version, backend)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.GET("/health", h.GetHealth)
			e.GET("/health/ready", h.GetHealthReady)
			e.GET("/health/status", h.GetHealthStatus)
		},
	}
}

// GetMetricsHandler mounts the Prometheus scrape endpoint at path.
func (s *Server) GetMetricsHandler(
	metricsHandler http.Handler,
	path string,
) []func(e *echo.Echo) {
	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.GET(path, echo.WrapHandler(metricsHandler))
		},
	}
}
