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
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/retr0h/bazaar/internal/api/common"
	"github.com/retr0h/bazaar/internal/authtoken"
	"github.com/retr0h/bazaar/internal/session"
)

// Keys under which the bearer middleware stores the caller on echo.Context.
const (
	ContextKeySubject = "auth.subject"
	ContextKeyRoles   = "auth.roles"
)

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
	) (*authtoken.CustomClaims, error)
}

// requestIDMiddleware copies the request id chosen by echo's RequestID
// middleware into the request context, where audit entries pick it up.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id == "" {
				id = uuid.NewString()
				c.Response().Header().Set(echo.HeaderXRequestID, id)
			}

			ctx := session.WithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// scopeMiddleware authenticates the bearer token and publishes the caller as
// the session principal. When requiredScopes is non-empty the caller must
// hold at least one of them.
func scopeMiddleware(
	tokenManager TokenValidator,
	signingKey string,
	requiredScopes ...string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return common.Error(c, http.StatusUnauthorized, "Bearer token required")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokenManager.Validate(tokenString, signingKey)
			if err != nil {
				return common.Error(c, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}

			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyRoles, claims.Roles)

			ctx := session.WithPrincipal(c.Request().Context(), session.Principal{
				Identity:      claims.Subject,
				Authenticated: true,
			})
			c.SetRequest(c.Request().WithContext(ctx))

			if len(requiredScopes) == 0 {
				return next(c)
			}

			resolved := authtoken.ResolvePermissions(claims.Roles, claims.Permissions)
			for _, required := range requiredScopes {
				if authtoken.HasPermission(resolved, required) {
					return next(c)
				}
			}

			return common.Error(c, http.StatusForbidden, fmt.Sprintf(
				"Insufficient permissions. Required: %v",
				requiredScopes,
			))
		}
	}
}

// scope returns the bearer middleware bound to this server's signing key.
func (s *Server) scope(
	requiredScopes ...string,
) echo.MiddlewareFunc {
	return scopeMiddleware(
		s.tokens,
		s.appConfig.API.Server.Security.SigningKey,
		requiredScopes...,
	)
}
