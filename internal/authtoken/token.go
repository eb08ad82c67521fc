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

// Package authtoken issues and verifies the bearer tokens the API accepts.
package authtoken

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// Issuer is stamped into every token.
	Issuer = "bazaar"
	// DefaultTTL is the lifetime of tokens issued without an explicit one.
	DefaultTTL = 12 * time.Hour
)

// RoleHierarchy lists the built-in roles from most to least privileged.
var RoleHierarchy = map[string]int{
	"admin": 3,
	"write": 2,
	"read":  1,
}

// CustomClaims are the claims carried by a bazaar token.
type CustomClaims struct {
	Roles       []string `json:"roles"                 validate:"required,min=1,dive,oneof=admin write read"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Token issues and validates JWTs.
type Token struct {
	logger *slog.Logger
}

// New creates a Token.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
	}
}

// GenerateAllowedRoles returns the role names in hierarchy.
func GenerateAllowedRoles(
	hierarchy map[string]int,
) []string {
	roles := make([]string, 0, len(hierarchy))
	for role := range hierarchy {
		roles = append(roles, role)
	}

	return roles
}

// Generate signs a token for subject valid for DefaultTTL.
func (t *Token) Generate(
	signingKey string,
	roles []string,
	subject string,
) (string, error) {
	return t.GenerateWithTTL(signingKey, roles, subject, nil, DefaultTTL)
}

// GenerateWithTTL signs a token for subject. Non-empty permissions replace
// the ones the roles would grant.
func (t *Token) GenerateWithTTL(
	signingKey string,
	roles []string,
	subject string,
	permissions []string,
	ttl time.Duration,
) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Roles:       roles,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	t.logger.Debug(
		"generated token",
		slog.String("subject", subject),
		slog.Any("roles", roles),
		slog.Duration("ttl", ttl),
	)

	return signed, nil
}
