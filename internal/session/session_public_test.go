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

package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/session"
)

type SessionPublicTestSuite struct {
	suite.Suite
}

func (s *SessionPublicTestSuite) TestCurrentPrincipal() {
	tests := []struct {
		name         string
		ctx          context.Context
		validateFunc func(p session.Principal, ok bool)
	}{
		{
			name: "no principal",
			ctx:  context.Background(),
			validateFunc: func(p session.Principal, ok bool) {
				s.False(ok)
				s.Equal(session.Principal{}, p)
				s.False(p.Usable())
			},
		},
		{
			name: "authenticated principal",
			ctx: session.WithPrincipal(context.Background(), session.Principal{
				Identity:      "admin@example.com",
				Authenticated: true,
			}),
			validateFunc: func(p session.Principal, ok bool) {
				s.True(ok)
				s.Equal("admin@example.com", p.Identity)
				s.True(p.Usable())
			},
		},
		{
			name: "anonymous principal is not usable",
			ctx: session.WithPrincipal(context.Background(), session.Principal{
				Identity:      "anonymousUser",
				Authenticated: true,
				Anonymous:     true,
			}),
			validateFunc: func(p session.Principal, ok bool) {
				s.True(ok)
				s.False(p.Usable())
			},
		},
		{
			name: "unauthenticated principal is not usable",
			ctx: session.WithPrincipal(context.Background(), session.Principal{
				Identity: "admin@example.com",
			}),
			validateFunc: func(p session.Principal, ok bool) {
				s.True(ok)
				s.False(p.Usable())
			},
		},
		{
			name: "principal without identity is not usable",
			ctx: session.WithPrincipal(context.Background(), session.Principal{
				Authenticated: true,
			}),
			validateFunc: func(p session.Principal, ok bool) {
				s.True(ok)
				s.False(p.Usable())
			},
		},
		{
			name: "innermost principal wins",
			ctx: session.WithPrincipal(
				session.WithPrincipal(context.Background(), session.Principal{
					Identity:      "outer@example.com",
					Authenticated: true,
				}),
				session.Principal{Identity: "inner@example.com", Authenticated: true},
			),
			validateFunc: func(p session.Principal, ok bool) {
				s.True(ok)
				s.Equal("inner@example.com", p.Identity)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			p, ok := session.CurrentPrincipal(tt.ctx)
			tt.validateFunc(p, ok)
		})
	}
}

func (s *SessionPublicTestSuite) TestRequestID() {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{
			name: "outside a request",
			ctx:  context.Background(),
			want: "",
		},
		{
			name: "set on the context",
			ctx:  session.WithRequestID(context.Background(), "req-42"),
			want: "req-42",
		},
		{
			name: "independent of the principal",
			ctx: session.WithPrincipal(
				session.WithRequestID(context.Background(), "req-7"),
				session.Principal{Identity: "a@example.com", Authenticated: true},
			),
			want: "req-7",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, session.RequestID(tt.ctx))
		})
	}
}

func TestSessionPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SessionPublicTestSuite))
}
