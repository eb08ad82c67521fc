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
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var errAppendPanic = errors.New("audit store panicked")

// Interceptor wraps auditable operations and appends exactly one entry per
// call once the call has settled. A nil Interceptor, or one built without a
// store, runs the wrapped operation and records nothing.
type Interceptor struct {
	store    Appender
	resolver *IdentityResolver
	factory  *Factory
	logger   *slog.Logger
	metrics  *interceptorMetrics
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithClock sets the clock used to stamp entries.
func WithClock(
	now func() time.Time,
) Option {
	return func(i *Interceptor) {
		i.factory = NewFactory(now)
	}
}

// WithPrincipalSource sets where the caller identity is read from.
func WithPrincipalSource(
	source PrincipalSource,
) Option {
	return func(i *Interceptor) {
		i.resolver = NewIdentityResolver(source)
	}
}

// NewInterceptor creates an Interceptor appending to store. Passing a nil
// store disables auditing without changing any wrapped call's result.
func NewInterceptor(
	logger *slog.Logger,
	store Appender,
	opts ...Option,
) *Interceptor {
	i := &Interceptor{
		store:    store,
		resolver: NewIdentityResolver(nil),
		factory:  NewFactory(nil),
		logger:   logger,
		metrics:  newInterceptorMetrics(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Enabled reports whether calls are being recorded.
func (i *Interceptor) Enabled() bool {
	return i != nil && i.store != nil
}

// Run invokes fn as the operation op with first argument arg. The value and
// error fn returns are passed back untouched; a panic in fn is recorded as a
// failure and re-raised with the same value.
//
// Operations other than login are refused with ErrUnresolvedActor, without
// calling fn, when no authenticated caller can be found.
func Run[R any](
	ctx context.Context,
	i *Interceptor,
	op Operation,
	arg any,
	fn func(ctx context.Context) (R, error),
) (result R, err error) {
	if !i.Enabled() {
		return fn(ctx)
	}

	shape := op.Shape()
	if arg != nil {
		if got := ShapeOf(arg); got != shape {
			i.logger.Warn(
				"payload shape differs from declared operation shape",
				slog.String("operation", op.Name),
				slog.String("declared", shape.String()),
				slog.String("detected", got.String()),
			)
		}
	}

	actor, ok := i.resolver.Resolve(ctx, op, arg)
	if !ok && op.requiresActor() {
		i.logger.Error(
			"refusing to run operation without an authenticated caller",
			slog.String("operation", op.Name),
		)
		return result, fmt.Errorf("%s: %w", op.Name, ErrUnresolvedActor)
	}

	draft := i.factory.Open(ctx, op.Action(), actor, shape, arg)

	settled := false
	defer func() {
		if settled {
			return
		}

		rec := recover()
		if rec == nil {
			// runtime.Goexit: fn never settled.
			i.logger.Debug(
				"operation exited before completion, not audited",
				slog.String("operation", op.Name),
			)
			return
		}

		i.record(ctx, draft, OutcomeFail)
		panic(rec)
	}()

	result, err = fn(ctx)
	settled = true

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFail
	}
	i.record(ctx, draft, outcome)

	return result, err
}

// record closes the draft and appends it. Append failures are logged and
// counted; they never reach the caller of the wrapped operation.
func (i *Interceptor) record(
	ctx context.Context,
	draft Draft,
	outcome Outcome,
) {
	entry := i.factory.Close(draft, outcome)

	stored, err := i.appendEntry(context.WithoutCancel(ctx), entry)
	if err != nil {
		i.metrics.appendFailed(ctx, entry)
		i.logger.Warn(
			"failed to append audit entry",
			slog.String("action", string(entry.Action)),
			slog.String("outcome", string(entry.Outcome)),
			slog.String("actor", entry.Actor),
			slog.String("error", err.Error()),
		)
		return
	}

	i.metrics.recorded(ctx, stored)
	i.logger.Debug(
		"audit entry appended",
		slog.Int64("id", stored.ID),
		slog.String("action", string(stored.Action)),
		slog.String("outcome", string(stored.Outcome)),
	)
}

// appendEntry calls the store, turning a panic inside Append into an error.
func (i *Interceptor) appendEntry(
	ctx context.Context,
	entry Entry,
) (stored Entry, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", errAppendPanic, rec)
		}
	}()

	return i.store.Append(ctx, entry)
}
