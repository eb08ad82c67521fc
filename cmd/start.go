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

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/telemetry"
)

// startCmd represents the top-level start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start all components (NATS, API server)",
	Long: `Start the embedded NATS server and the API server in a single process.

NATS starts first so the nats audit backend can bind its bucket. Both
components shut down gracefully on SIGINT/SIGTERM.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		metrics, cleanups, err := initTelemetry(ctx, telemetry.ServiceName)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize telemetry", err)
		}

		natsServer, err := setupNATSServer(logger.With("component", "nats"), appConfig.NATS.Server)
		if err != nil {
			cli.LogFatal(logger, "failed to start nats server", err)
		}

		cleanups = append(cleanups, func(stopCtx context.Context) error {
			(&natsLifecycle{server: natsServer}).Stop(stopCtx)
			return nil
		})

		sm, apiCleanups, err := setupAPIServer(ctx, logger.With("component", "api"), metrics)
		if err != nil {
			natsServer.Shutdown()
			cli.LogFatal(logger, "failed to set up api server", err)
		}
		// Cleanups run in reverse, so the audit connection closes before
		// the embedded server stops.
		cleanups = append(cleanups, apiCleanups...)

		sm.Start()
		cli.RunServer(ctx, logger, sm, cleanups...)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
