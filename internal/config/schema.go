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

package config

import (
	"errors"
	"fmt"
	"time"

	masker "github.com/ggwhite/go-masker/v2"

	"github.com/retr0h/bazaar/internal/validation"
)

// Validate checks field tags and the rules that span sections.
func Validate(
	cfg *Config,
) error {
	if msg, ok := validation.Struct(cfg); !ok {
		return errors.New(msg)
	}

	if ttl := cfg.API.Server.Security.TokenTTL; ttl != "" {
		if _, err := time.ParseDuration(ttl); err != nil {
			return fmt.Errorf("api.server.security.token_ttl: %w", err)
		}
	}

	if !cfg.Audit.Enabled {
		return nil
	}

	switch cfg.Audit.Backend {
	case "sql":
		if cfg.Audit.SQL.Driver == "" || cfg.Audit.SQL.DSN == "" {
			return errors.New("audit.sql.driver and audit.sql.dsn are required for the sql backend")
		}
	case "nats":
		if cfg.Audit.NATS.Connection.Host == "" || cfg.Audit.NATS.Bucket == "" {
			return errors.New("audit.nats.connection.host and audit.nats.bucket are required for the nats backend")
		}
	case "redis":
		if cfg.Audit.Redis.Addr == "" {
			return errors.New("audit.redis.addr is required for the redis backend")
		}
	}

	return nil
}

// Masked returns a copy of cfg with secrets replaced, for debug output.
func Masked(
	cfg Config,
) (any, error) {
	masked, err := masker.NewMaskerMarshaler().Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("mask config: %w", err)
	}

	return masked, nil
}
