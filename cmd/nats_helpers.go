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
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/config"
)

const natsReadyTimeout = 10 * time.Second

// natsLogger routes embedded server logs through slog.
type natsLogger struct {
	log *slog.Logger
}

func (l *natsLogger) Noticef(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l *natsLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l *natsLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *natsLogger) Errorf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *natsLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l *natsLogger) Tracef(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

// natsLifecycle adapts an embedded NATS server to cli.Lifecycle.
type natsLifecycle struct {
	server *server.Server
}

// Start is a no-op; setupNATSServer already started the server.
func (n *natsLifecycle) Start() {}

func (n *natsLifecycle) Stop(_ context.Context) {
	n.server.Shutdown()
	n.server.WaitForShutdown()
}

// natsServerOptions maps the config block onto server options with
// JetStream enabled.
func natsServerOptions(
	cfg config.NATSServer,
) *server.Options {
	opts := &server.Options{
		ServerName: "bazaar",
		Host:       cfg.Host,
		Port:       cfg.Port,
		JetStream:  true,
		StoreDir:   cfg.StoreDir,
		NoSigs:     true,
	}

	for _, u := range cfg.Users {
		opts.Users = append(opts.Users, &server.User{
			Username: u.Username,
			Password: u.Password,
		})
	}

	return opts
}

// setupNATSServer starts an embedded NATS server and waits until it
// accepts connections.
func setupNATSServer(
	log *slog.Logger,
	cfg config.NATSServer,
) (*server.Server, error) {
	s, err := server.NewServer(natsServerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	s.SetLoggerV2(&natsLogger{log: log}, false, false, false)
	s.Start()

	if !s.ReadyForConnections(natsReadyTimeout) {
		s.Shutdown()
		return nil, fmt.Errorf("nats server not ready after %s", natsReadyTimeout)
	}

	log.Info(
		"nats server ready",
		slog.String("url", s.ClientURL()),
		slog.Bool("jetstream", s.JetStreamEnabled()),
	)

	return s, nil
}

var _ cli.Lifecycle = (*natsLifecycle)(nil)
