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

// Package auth serves login and logout.
package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/bazaar/internal/api/common"
	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/user"
)

// Auth implements the authentication endpoints.
type Auth struct {
	service user.Service
	logger  *slog.Logger
}

// LogoutResponse is the body of POST /auth/logout.
type LogoutResponse struct {
	Email string `json:"email"`
}

// New creates the auth handler.
func New(
	logger *slog.Logger,
	service user.Service,
) *Auth {
	return &Auth{
		service: service,
		logger:  logger,
	}
}

// PostLogin exchanges credentials for a token. The payload is validated by
// the service so rejected attempts still reach the audit trail.
func (a *Auth) PostLogin(
	c echo.Context,
) error {
	var req user.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.Error(c, http.StatusBadRequest, "invalid request body")
	}

	sess, err := a.service.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRequest):
			return common.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrInvalidCredentials):
			return common.Error(c, http.StatusUnauthorized, err.Error())
		}

		a.logger.ErrorContext(
			c.Request().Context(),
			"login failed",
			slog.String("error", err.Error()),
		)
		return common.Error(c, http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, sess)
}

// PostLogout ends the caller's session.
func (a *Auth) PostLogout(
	c echo.Context,
) error {
	email, err := a.service.Logout(c.Request().Context())
	if err != nil {
		if errors.Is(err, user.ErrNotAuthenticated) || errors.Is(err, audit.ErrUnresolvedActor) {
			return common.Error(c, http.StatusUnauthorized, "not authenticated")
		}

		a.logger.ErrorContext(
			c.Request().Context(),
			"logout failed",
			slog.String("error", err.Error()),
		)
		return common.Error(c, http.StatusInternalServerError, "logout failed")
	}

	return c.JSON(http.StatusOK, LogoutResponse{Email: email})
}
