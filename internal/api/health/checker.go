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

package health

import (
	"context"
	"errors"
	"fmt"
)

// DependencyChecker checks the audit store and, when configured, the NATS
// connection backing it.
type DependencyChecker struct {
	// StoreCheck verifies the audit store answers.
	StoreCheck func(ctx context.Context) error
	// BrokerCheck verifies the NATS connection.
	BrokerCheck func(ctx context.Context) error
}

// CheckHealth runs every configured check and joins the failures.
func (c *DependencyChecker) CheckHealth(
	ctx context.Context,
) error {
	var errs []error

	if c.StoreCheck != nil {
		if err := c.StoreCheck(ctx); err != nil {
			errs = append(errs, fmt.Errorf("audit store: %w", err))
		}
	}

	if c.BrokerCheck != nil {
		if err := c.BrokerCheck(ctx); err != nil {
			errs = append(errs, fmt.Errorf("nats: %w", err))
		}
	}

	return errors.Join(errs...)
}
