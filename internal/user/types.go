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

// Package user authenticates marketplace operators and issues their tokens.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthenticated is returned by Logout when no caller is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidRequest is returned by Login when the payload is malformed.
	ErrInvalidRequest = errors.New("invalid login request")
)

// User is an account allowed to log in.
type User struct {
	Email        string
	PasswordHash string
	Roles        []string
}

// LoginRequest is the payload of a login attempt.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GetEmail returns the email the caller claims to be.
func (r LoginRequest) GetEmail() string {
	return r.Email
}

// String omits the password.
func (r LoginRequest) String() string {
	return fmt.Sprintf("LoginRequest{email=%q}", r.Email)
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service is the authentication use-case surface.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Logout(ctx context.Context) (string, error)
}
