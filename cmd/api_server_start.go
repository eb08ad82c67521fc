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
	"github.com/spf13/cobra"

	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/telemetry"
)

// apiServerStartCmd represents the apiServerStart command.
var apiServerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Long: `Start the API server.

The audit backend is chosen by audit.backend. The nats backend expects a
reachable NATS server with JetStream, see "bazaar nats server start" or
"bazaar start".
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		log := logger.With("component", "api")

		metrics, cleanups, err := initTelemetry(ctx, telemetry.ServiceName)
		if err != nil {
			cli.LogFatal(log, "failed to initialize telemetry", err)
		}

		sm, apiCleanups, err := setupAPIServer(ctx, log, metrics)
		if err != nil {
			cli.LogFatal(log, "failed to set up api server", err)
		}
		cleanups = append(cleanups, apiCleanups...)

		sm.Start()
		cli.RunServer(ctx, log, sm, cleanups...)
	},
}

func init() {
	apiServerCmd.AddCommand(apiServerStartCmd)
}
