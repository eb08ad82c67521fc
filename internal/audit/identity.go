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

package audit

import (
	"context"

	"github.com/retr0h/bazaar/internal/session"
	"github.com/retr0h/bazaar/internal/validation"
)

// PrincipalSource exposes the caller identity established by authentication.
type PrincipalSource interface {
	CurrentPrincipal(ctx context.Context) (session.Principal, bool)
}

// PrincipalSourceFunc adapts a function to PrincipalSource.
type PrincipalSourceFunc func(ctx context.Context) (session.Principal, bool)

// CurrentPrincipal calls f(ctx).
func (f PrincipalSourceFunc) CurrentPrincipal(
	ctx context.Context,
) (session.Principal, bool) {
	return f(ctx)
}

// ContextPrincipals reads the principal that middleware stored in the context.
var ContextPrincipals PrincipalSource = PrincipalSourceFunc(session.CurrentPrincipal)

// IdentityResolver determines who performed an operation.
type IdentityResolver struct {
	source PrincipalSource
}

// NewIdentityResolver creates a resolver reading principals from source.
func NewIdentityResolver(
	source PrincipalSource,
) *IdentityResolver {
	if source == nil {
		source = ContextPrincipals
	}

	return &IdentityResolver{source: source}
}

// Resolve returns the actor for the operation. An established, non-anonymous
// principal wins; failing that, a login operation is attributed to the email
// in its payload whether or not the password turns out to be right. A payload
// without a well-formed email leaves the attempt anonymous.
func (r *IdentityResolver) Resolve(
	ctx context.Context,
	op Operation,
	arg any,
) (string, bool) {
	if p, ok := r.source.CurrentPrincipal(ctx); ok && p.Usable() {
		return p.Identity, true
	}

	if op.Kind == KindLogin {
		if c, ok := arg.(Credentials); ok {
			email := c.GetEmail()
			if _, ok := validation.Var(email, "required,email"); ok {
				return email, true
			}
		}
	}

	return "", false
}
