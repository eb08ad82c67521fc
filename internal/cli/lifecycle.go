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

package cli

import (
	"context"
	"log/slog"
	"time"
)

// ShutdownTimeout bounds how long RunServer waits for a graceful stop.
const ShutdownTimeout = 10 * time.Second

// Lifecycle represents a long-running server.
type Lifecycle interface {
	// Start starts the server without blocking.
	Start()
	// Stop gracefully shuts down the server.
	Stop(ctx context.Context)
}

// CleanupFunc releases a resource acquired during startup.
type CleanupFunc func(ctx context.Context) error

// RunServer blocks until ctx is cancelled, then shuts down the server
// with a timeout and runs cleanup functions in reverse order. Cleanup
// failures are logged and do not stop the remaining cleanups.
func RunServer(
	ctx context.Context,
	logger *slog.Logger,
	server Lifecycle,
	cleanupFns ...CleanupFunc,
) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		ShutdownTimeout,
	)
	defer cancel()

	server.Stop(shutdownCtx)

	for i := len(cleanupFns) - 1; i >= 0; i-- {
		if err := cleanupFns[i](shutdownCtx); err != nil {
			logger.Warn("cleanup failed", slog.String("error", err.Error()))
		}
	}
}
