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
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/config"
	"github.com/retr0h/bazaar/internal/telemetry"
)

// version is stamped at build time.
var version = "0.1.0"

var (
	appConfig  config.Config
	logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bazaar",
	Short: "A marketplace API with an append-only audit trail.",
	Long: `A marketplace API for users, products and their catalog. Every login,
logout and product mutation is recorded in an append-only audit trail
that administrators can query.

┌┐ ┌─┐┌─┐┌─┐┌─┐┬─┐
├┴┐├─┤┌─┘├─┤├─┤├┬┘
└─┘┴ ┴└─┘┴ ┴┴ ┴┴└─

https://github.com/retr0h/bazaar
`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger, dumpConfig)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("bazaar-file", "f", "/etc/bazaar/bazaar.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("bazaarFile", rootCmd.PersistentFlags().Lookup("bazaar-file"))
}

func setDefaults() {
	viper.SetDefault("api.client.url", "http://0.0.0.0:8080")
	viper.SetDefault("api.server.port", 8080)
	viper.SetDefault("api.server.security.token_ttl", "12h")
	viper.SetDefault("audit.enabled", true)
	viper.SetDefault("audit.backend", "memory")
	viper.SetDefault("audit.nats.bucket", cli.DefaultAuditBucket)
	viper.SetDefault("audit.nats.storage", "file")
	viper.SetDefault("audit.nats.replicas", 1)
	viper.SetDefault("nats.server.host", "0.0.0.0")
	viper.SetDefault("nats.server.port", 4222)
	viper.SetDefault("telemetry.metrics.path", telemetry.DefaultMetricsPath)
}

func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("bazaar")
	viper.SetConfigFile(viper.GetString("bazaarFile"))
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		cli.LogFatal(logger, "failed to read config", err, "bazaarFile", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		cli.LogFatal(logger, "failed to unmarshal config", err, "bazaarFile", viper.ConfigFileUsed())
	}

	// Auto-enable tracing in debug mode so trace_id appears in log lines.
	// No exporter is set, so spans are only used for log correlation.
	if appConfig.Debug && !appConfig.Telemetry.Tracing.Enabled {
		appConfig.Telemetry.Tracing.Enabled = true
	}

	err := config.Validate(&appConfig)
	if err != nil {
		cli.LogFatal(logger, "validation failed", err, "bazaarFile", viper.ConfigFileUsed())
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	handler = telemetry.NewTraceHandler(handler)
	logger = slog.New(handler)
}

// dumpConfig logs the effective configuration with secrets masked.
func dumpConfig() {
	if !appConfig.Debug {
		return
	}

	masked, err := config.Masked(appConfig)
	if err != nil {
		logger.Warn("failed to mask config", slog.String("error", err.Error()))
		return
	}

	b, err := json.Marshal(masked)
	if err != nil {
		logger.Warn("failed to render config", slog.String("error", err.Error()))
		return
	}

	logger.Debug(
		"loaded configuration",
		slog.String("config_file", viper.ConfigFileUsed()),
		slog.String("config", string(b)),
	)
}
