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
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/client"
	"github.com/retr0h/bazaar/internal/telemetry"
)

var (
	handler        client.CombinedHandler
	tracerShutdown func(context.Context) error
)

// clientCmd represents the client command.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "The client subcommand",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var err error
		tracerShutdown, err = telemetry.InitTracer(
			cmd.Context(),
			telemetry.ServiceName+"-cli",
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		logger.Debug(
			"client configuration",
			slog.String("config_file", viper.ConfigFileUsed()),
			slog.Bool("debug", appConfig.Debug),
			slog.String("api.client.url", appConfig.API.URL),
		)

		handler = client.New(logger, appConfig)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if tracerShutdown != nil {
			_ = tracerShutdown(context.Background())
		}
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)

	clientCmd.PersistentFlags().
		StringP("url", "", "http://0.0.0.0:8080", "URL the client will connect to")
	clientCmd.PersistentFlags().
		StringP("token", "", "", "Bearer token, overriding api.client.security.bearer_token")

	_ = viper.BindPFlag("api.client.url", clientCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag(
		"api.client.security.bearer_token",
		clientCmd.PersistentFlags().Lookup("token"),
	)
}

// printJSON writes v as indented JSON when --json is set and reports
// whether it did.
func printJSON(
	v any,
) bool {
	if !jsonOutput {
		return false
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cli.LogFatal(logger, "failed to render json", err)
	}
	fmt.Println(string(b))

	return true
}
