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

// Package session carries request-scoped caller identity through a context.
//
// Middleware sets values; services and the audit layer read them:
//
//	ctx = session.WithPrincipal(ctx, session.Principal{Identity: "a@b.c", Authenticated: true})
//	p, ok := session.CurrentPrincipal(ctx)
package session

import "context"

type (
	principalKey struct{}
	requestIDKey struct{}
)

// Principal is the caller identity established by authentication.
type Principal struct {
	// Identity is the email-shaped subject of the caller.
	Identity string
	// Authenticated is true once credentials were verified.
	Authenticated bool
	// Anonymous marks a placeholder principal for unauthenticated traffic.
	Anonymous bool
}

// Usable reports whether the principal identifies a real, logged-in caller.
func (p Principal) Usable() bool {
	return p.Authenticated && !p.Anonymous && p.Identity != ""
}

// WithPrincipal injects the caller principal into the context.
func WithPrincipal(
	ctx context.Context,
	p Principal,
) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// CurrentPrincipal returns the principal stored in the context, if any.
func CurrentPrincipal(
	ctx context.Context,
) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithRequestID injects the request correlation id into the context.
func WithRequestID(
	ctx context.Context,
	requestID string,
) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation id, or "" outside a request.
func RequestID(
	ctx context.Context,
) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
