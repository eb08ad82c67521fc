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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/retr0h/bazaar/internal/api"
	"github.com/retr0h/bazaar/internal/api/health"
	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/authtoken"
	"github.com/retr0h/bazaar/internal/catalog"
	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/config"
	"github.com/retr0h/bazaar/internal/product"
	"github.com/retr0h/bazaar/internal/telemetry"
	"github.com/retr0h/bazaar/internal/user"
	"github.com/retr0h/bazaar/internal/validation"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// GetAuditHandler returns the audit trail routes.
	GetAuditHandler(store audit.Store) []func(e *echo.Echo)
	// GetProductHandler returns the product routes.
	GetProductHandler(service product.Service) []func(e *echo.Echo)
	// GetCatalogHandler returns the category and brand routes.
	GetCatalogHandler(c *catalog.Catalog) []func(e *echo.Echo)
	// GetAuthHandler returns the login and logout routes.
	GetAuthHandler(service user.Service) []func(e *echo.Echo)
	// GetHealthHandler returns the probe routes.
	GetHealthHandler(
		checker health.Checker,
		startTime time.Time,
		version string,
	) []func(e *echo.Echo)
	// GetMetricsHandler returns the Prometheus scrape route.
	GetMetricsHandler(metricsHandler http.Handler, path string) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers []func(e *echo.Echo))
}

// auditBackend is an opened audit store plus what the health probe and
// shutdown need to know about it.
type auditBackend struct {
	store       audit.Store
	storeCheck  func(ctx context.Context) error
	brokerCheck func(ctx context.Context) error
	cleanups    []cli.CleanupFunc
}

// openAuditBackend opens the store selected by cfg.Backend. When auditing
// is disabled the returned backend has a nil store.
func openAuditBackend(
	ctx context.Context,
	log *slog.Logger,
	cfg config.Audit,
) (*auditBackend, error) {
	if !cfg.Enabled {
		log.Warn("audit trail disabled")
		return &auditBackend{}, nil
	}

	switch cfg.Backend {
	case "", "memory":
		return &auditBackend{store: audit.NewMemoryStore()}, nil
	case "sql":
		return openSQLBackend(ctx, cfg.SQL)
	case "nats":
		return openNATSBackend(log, cfg.NATS)
	case "redis":
		return openRedisBackend(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported audit backend %q", cfg.Backend)
	}
}

func openSQLBackend(
	ctx context.Context,
	cfg config.AuditSQL,
) (*auditBackend, error) {
	s, err := audit.OpenSQLStore(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	return &auditBackend{
		store:      s,
		storeCheck: s.Ping,
		cleanups: []cli.CleanupFunc{
			func(_ context.Context) error { return s.Close() },
		},
	}, nil
}

func openNATSBackend(
	log *slog.Logger,
	cfg config.AuditNATS,
) (*auditBackend, error) {
	nc, err := nats.Connect(cli.NATSURL(cfg.Connection), cli.BuildNATSOptions(cfg.Connection)...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	kv, err := bindAuditBucket(nc, cli.BuildAuditKVConfig(cfg))
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &auditBackend{
		store: audit.NewKVStore(log, kv),
		storeCheck: func(_ context.Context) error {
			_, err := kv.Status()
			return err
		},
		brokerCheck: func(_ context.Context) error {
			if status := nc.Status(); status != nats.CONNECTED {
				return fmt.Errorf("connection %s", status)
			}
			return nil
		},
		cleanups: []cli.CleanupFunc{
			func(_ context.Context) error { return cli.CloseNATSConn(nc) },
		},
	}, nil
}

// bindAuditBucket opens the audit bucket, creating it on first start.
func bindAuditBucket(
	nc *nats.Conn,
	kvCfg *nats.KeyValueConfig,
) (nats.KeyValue, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	kv, err := js.KeyValue(kvCfg.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(kvCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("audit bucket %q: %w", kvCfg.Bucket, err)
	}

	return kv, nil
}

func openRedisBackend(
	ctx context.Context,
	cfg config.AuditRedis,
) (*auditBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	s := audit.NewRedisStore(client, cfg.Prefix)
	if err := s.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &auditBackend{
		store:      s,
		storeCheck: s.Ping,
		cleanups: []cli.CleanupFunc{
			func(_ context.Context) error { return client.Close() },
		},
	}, nil
}

// checker builds the readiness checker for the backend.
func (b *auditBackend) checker() *health.DependencyChecker {
	return &health.DependencyChecker{
		StoreCheck:  b.storeCheck,
		BrokerCheck: b.brokerCheck,
	}
}

// toUsers converts configured accounts into login users.
func toUsers(
	accounts []config.User,
) []user.User {
	users := make([]user.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, user.User{
			Email:        a.Email,
			PasswordHash: a.PasswordHash,
			Roles:        a.Roles,
		})
	}

	return users
}

// tokenTTL parses the configured login token lifetime. Config validation
// has already rejected malformed values.
func tokenTTL(
	raw string,
) time.Duration {
	if raw == "" {
		return authtoken.DefaultTTL
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return authtoken.DefaultTTL
	}

	return ttl
}

// setupAPIServer opens the audit backend and builds the API server with
// every handler registered. The returned cleanups release the backend.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
	metrics *telemetry.Metrics,
) (ServerManager, []cli.CleanupFunc, error) {
	backend, err := openAuditBackend(ctx, log, appConfig.Audit)
	if err != nil {
		return nil, nil, err
	}

	ic := audit.NewInterceptor(log, backend.appender())

	cat := catalog.New(appConfig.Catalog)
	validation.RegisterCatalogValidators(cat)

	products := product.NewAuditedService(
		product.NewManager(log, product.NewMemoryRepository(), cat),
		ic,
	)

	users := user.NewAuditedService(
		user.NewManager(
			log,
			authtoken.New(log),
			appConfig.API.Server.Security.SigningKey,
			tokenTTL(appConfig.API.Server.Security.TokenTTL),
			toUsers(appConfig.API.Server.Users),
		),
		ic,
	)

	sm := api.New(appConfig, log)
	registerAPIHandlers(sm, backend, products, users, cat, metrics)

	log.Info(
		"api server configured",
		slog.Bool("audit_enabled", ic.Enabled()),
		slog.String("audit_backend", appConfig.Audit.Backend),
		slog.Int("users", len(appConfig.API.Server.Users)),
	)

	return sm, backend.cleanups, nil
}

// appender returns the store as an Appender, or nil when auditing is off.
func (b *auditBackend) appender() audit.Appender {
	if b.store == nil {
		return nil
	}

	return b.store
}

func registerAPIHandlers(
	sm ServerManager,
	backend *auditBackend,
	products product.Service,
	users user.Service,
	cat *catalog.Catalog,
	metrics *telemetry.Metrics,
) {
	startTime := time.Now()

	handlers := make([]func(e *echo.Echo), 0, 8)
	handlers = append(handlers, sm.GetAuthHandler(users)...)
	handlers = append(handlers, sm.GetProductHandler(products)...)
	handlers = append(handlers, sm.GetCatalogHandler(cat)...)
	handlers = append(handlers, sm.GetHealthHandler(backend.checker(), startTime, version)...)
	if metrics != nil {
		handlers = append(handlers, sm.GetMetricsHandler(metrics.Handler, metrics.Path)...)
	}
	if backend.store != nil {
		handlers = append(handlers, sm.GetAuditHandler(backend.store)...)
	}

	sm.RegisterHandlers(handlers)
}

// initTelemetry installs the tracer and meter providers and returns the
// cleanups that flush them.
func initTelemetry(
	ctx context.Context,
	serviceName string,
) (*telemetry.Metrics, []cli.CleanupFunc, error) {
	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, appConfig.Telemetry.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize tracer: %w", err)
	}

	metrics, err := telemetry.InitMeter(appConfig.Telemetry.Metrics)
	if err != nil {
		_ = shutdownTracer(ctx)
		return nil, nil, fmt.Errorf("initialize meter: %w", err)
	}

	return metrics, []cli.CleanupFunc{shutdownTracer, metrics.Shutdown}, nil
}
