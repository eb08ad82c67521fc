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

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	auditapi "github.com/retr0h/bazaar/internal/api/audit"
	authapi "github.com/retr0h/bazaar/internal/api/auth"
	"github.com/retr0h/bazaar/internal/api/health"
	productapi "github.com/retr0h/bazaar/internal/api/product"
	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/audit/export"
	"github.com/retr0h/bazaar/internal/product"
	"github.com/retr0h/bazaar/internal/user"
)

// CombinedHandler is everything the CLI can ask the server for.
type CombinedHandler interface {
	AuthHandler
	AuditHandler
	ProductHandler
	HealthHandler
}

// AuthHandler covers login and logout.
type AuthHandler interface {
	// Login exchanges credentials for a token.
	Login(ctx context.Context, email string, password string) (*user.Session, error)
	// Logout ends the session of the configured token.
	Logout(ctx context.Context) (*authapi.LogoutResponse, error)
}

// AuditHandler reads the audit trail.
type AuditHandler interface {
	// GetAuditLogs returns the trail, or one actor's entries when userEmail
	// is set.
	GetAuditLogs(ctx context.Context, userEmail string) (*auditapi.ListResponse, error)
	// GetAuditLogsPage returns at most limit entries starting at offset.
	GetAuditLogsPage(
		ctx context.Context,
		userEmail string,
		limit int,
		offset int,
	) (*auditapi.ListResponse, error)
	// GetAuditLogByID returns one entry.
	GetAuditLogByID(ctx context.Context, id int64) (*auditapi.EntryResponse, error)
}

// ProductHandler manages products.
type ProductHandler interface {
	ListProducts(ctx context.Context) (*productapi.ListResponse, error)
	CreateProduct(ctx context.Context, req productapi.Request) (*product.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*productapi.DeleteResponse, error)
}

// HealthHandler reads the probes.
type HealthHandler interface {
	GetHealthStatus(ctx context.Context) (*health.DetailResponse, error)
}

// ensure Client implements CombinedHandler at compile time.
var _ CombinedHandler = (*Client)(nil)

// Login implements AuthHandler.
func (c *Client) Login(
	ctx context.Context,
	email string,
	password string,
) (*user.Session, error) {
	var out user.Session
	err := c.do(ctx, http.MethodPost, "/auth/login", user.LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// Logout implements AuthHandler.
func (c *Client) Logout(
	ctx context.Context,
) (*authapi.LogoutResponse, error) {
	var out authapi.LogoutResponse
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetAuditLogs implements AuditHandler.
func (c *Client) GetAuditLogs(
	ctx context.Context,
	userEmail string,
) (*auditapi.ListResponse, error) {
	return c.GetAuditLogsPage(ctx, userEmail, 0, 0)
}

// GetAuditLogsPage implements AuditHandler. A zero limit asks for the whole
// trail.
func (c *Client) GetAuditLogsPage(
	ctx context.Context,
	userEmail string,
	limit int,
	offset int,
) (*auditapi.ListResponse, error) {
	query := url.Values{}
	if userEmail != "" {
		query.Set("userEmail", userEmail)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
		query.Set("offset", strconv.Itoa(offset))
	}

	path := "/audits"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out auditapi.ListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AuditPages returns an export.Fetcher reading the trail page by page. An
// empty trail, which the server reports as 404, yields no entries.
func AuditPages(
	h AuditHandler,
	userEmail string,
) export.Fetcher {
	return func(ctx context.Context, limit int, offset int) ([]audit.Entry, int, error) {
		resp, err := h.GetAuditLogsPage(ctx, userEmail, limit, offset)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil, 0, nil
			}
			return nil, 0, err
		}

		return resp.Items, resp.TotalItems, nil
	}
}

// GetAuditLogByID implements AuditHandler.
func (c *Client) GetAuditLogByID(
	ctx context.Context,
	id int64,
) (*auditapi.EntryResponse, error) {
	var out auditapi.EntryResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/audits/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListProducts implements ProductHandler.
func (c *Client) ListProducts(
	ctx context.Context,
) (*productapi.ListResponse, error) {
	var out productapi.ListResponse
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CreateProduct implements ProductHandler.
func (c *Client) CreateProduct(
	ctx context.Context,
	req productapi.Request,
) (*product.Product, error) {
	var out product.Product
	if err := c.do(ctx, http.MethodPost, "/products", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteProduct implements ProductHandler.
func (c *Client) DeleteProduct(
	ctx context.Context,
	id int64,
) (*productapi.DeleteResponse, error) {
	var out productapi.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetHealthStatus implements HealthHandler.
func (c *Client) GetHealthStatus(
	ctx context.Context,
) (*health.DetailResponse, error) {
	var out health.DetailResponse
	if err := c.do(ctx, http.MethodGet, "/health/status", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
