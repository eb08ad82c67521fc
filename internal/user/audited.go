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

package user

import (
	"context"

	"github.com/retr0h/bazaar/internal/audit"
)

// ensure AuditedService implements Service at compile time.
var _ Service = (*AuditedService)(nil)

// AuditedService records logins and logouts in the audit trail.
type AuditedService struct {
	next Service
	ic   *audit.Interceptor

	login  audit.Operation
	logout audit.Operation
}

// NewAuditedService wraps next. A nil interceptor records nothing.
func NewAuditedService(
	next Service,
	ic *audit.Interceptor,
) *AuditedService {
	return &AuditedService{
		next:   next,
		ic:     ic,
		login:  audit.MustOperation("loginUser"),
		logout: audit.MustOperation("logoutUser"),
	}
}

// Login is recorded as LOGIN, attributed to the email in req when the
// caller is not already authenticated.
func (s *AuditedService) Login(
	ctx context.Context,
	req LoginRequest,
) (Session, error) {
	return audit.Run(ctx, s.ic, s.login, req, func(ctx context.Context) (Session, error) {
		return s.next.Login(ctx, req)
	})
}

// Logout is recorded as LOGOUT.
func (s *AuditedService) Logout(
	ctx context.Context,
) (string, error) {
	return audit.Run(ctx, s.ic, s.logout, nil, func(ctx context.Context) (string, error) {
		return s.next.Logout(ctx)
	})
}
