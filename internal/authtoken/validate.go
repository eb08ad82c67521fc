// Copyright (c) 2024 John Dewey

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

package authtoken

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v4"

	"github.com/retr0h/bazaar/internal/validation"
)

// ErrInvalidToken wraps every reason a bearer token is refused.
var ErrInvalidToken = errors.New("invalid token")

// Validate verifies tokenString against signingKey and returns its claims.
// Tokens from another issuer, or without a subject to attribute audit
// entries to, are refused.
func (t *Token) Validate(
	tokenString string,
	signingKey string,
) (*CustomClaims, error) {
	claims := &CustomClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(signingKey), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !claims.VerifyIssuer(Issuer, true) {
		return nil, fmt.Errorf("%w: issuer %q not accepted", ErrInvalidToken, claims.Issuer)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject required", ErrInvalidToken)
	}

	if errMsg, ok := validation.Struct(claims); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, errMsg)
	}

	t.logger.Debug(
		"validated token",
		slog.String("subject", claims.Subject),
		slog.Any("roles", claims.Roles),
	)

	return claims, nil
}
