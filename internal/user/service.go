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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/retr0h/bazaar/internal/authtoken"
	"github.com/retr0h/bazaar/internal/session"
	"github.com/retr0h/bazaar/internal/validation"
)

// ensure Manager implements Service at compile time.
var _ Service = (*Manager)(nil)

// decoyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var decoyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z6Q6N3QCH8p0aUoJxXo3yC6e")

// Manager implements Service over a fixed set of users.
type Manager struct {
	logger     *slog.Logger
	tokens     *authtoken.Token
	signingKey string
	ttl        time.Duration
	users      map[string]User
}

// NewManager creates a Manager. Emails are matched case-insensitively. A
// non-positive ttl falls back to authtoken.DefaultTTL.
func NewManager(
	logger *slog.Logger,
	tokens *authtoken.Token,
	signingKey string,
	ttl time.Duration,
	users []User,
) *Manager {
	if ttl <= 0 {
		ttl = authtoken.DefaultTTL
	}

	byEmail := make(map[string]User, len(users))
	for _, u := range users {
		byEmail[strings.ToLower(u.Email)] = u
	}

	return &Manager{
		logger:     logger,
		tokens:     tokens,
		signingKey: signingKey,
		ttl:        ttl,
		users:      byEmail,
	}
}

// Login checks the password and issues a token for the user. A malformed
// payload fails here, inside the audited call, so the attempt is recorded.
func (m *Manager) Login(
	_ context.Context,
	req LoginRequest,
) (Session, error) {
	if errMsg, ok := validation.Struct(req); !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidRequest, errMsg)
	}

	u, ok := m.users[strings.ToLower(req.Email)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(req.Password))
		return Session{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(m.ttl)
	token, err := m.tokens.GenerateWithTTL(m.signingKey, u.Roles, u.Email, nil, m.ttl)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	m.logger.Info("user logged in", slog.String("email", u.Email))

	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout ends the caller's session and returns who logged out. Tokens are
// stateless, so nothing is revoked.
func (m *Manager) Logout(
	ctx context.Context,
) (string, error) {
	p, ok := session.CurrentPrincipal(ctx)
	if !ok || !p.Usable() {
		return "", ErrNotAuthenticated
	}

	m.logger.Info("user logged out", slog.String("email", p.Identity))

	return p.Identity, nil
}

// HashPassword returns a bcrypt hash suitable for the users config.
func HashPassword(
	password string,
) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}
