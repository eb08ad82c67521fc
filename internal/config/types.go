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

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API       API       `mapstructure:"api"       mask:"struct"`
	Audit     Audit     `mapstructure:"audit"     mask:"struct"`
	Catalog   Catalog   `mapstructure:"catalog"`
	NATS      NATS      `mapstructure:"nats"      mask:"struct"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// SampleRatio is the fraction of root traces kept. Zero keeps all.
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

// Audit configuration settings.
type Audit struct {
	// Enabled turns the audit trail on. When false, audited operations
	// run without recording anything.
	Enabled bool `mapstructure:"enabled"`
	// Backend selects the store: "memory", "sql", "nats" or "redis".
	Backend string `mapstructure:"backend" validate:"omitempty,oneof=memory sql nats redis"`
	// SQL settings for the "sql" backend.
	SQL AuditSQL `mapstructure:"sql,omitempty" mask:"struct"`
	// NATS settings for the "nats" backend.
	NATS AuditNATS `mapstructure:"nats,omitempty" mask:"struct"`
	// Redis settings for the "redis" backend.
	Redis AuditRedis `mapstructure:"redis,omitempty" mask:"struct"`
}

// AuditSQL configures the relational audit store.
type AuditSQL struct {
	// Driver is "postgres" or "sqlite".
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=postgres postgresql sqlite sqlite3"`
	// DSN is the driver-specific data source name.
	DSN string `mapstructure:"dsn" mask:"password"`
}

// AuditNATS configures the NATS KeyValue audit store.
type AuditNATS struct {
	// Connection to the NATS server.
	Connection NATSConnection `mapstructure:"connection" mask:"struct"`
	// Bucket is the KV bucket name for audit entries.
	Bucket string `mapstructure:"bucket"`
	// Storage is "file" or "memory".
	Storage string `mapstructure:"storage" validate:"omitempty,oneof=file memory"`
	// Replicas is the bucket replication factor.
	Replicas int `mapstructure:"replicas"`
}

// AuditRedis configures the Redis audit store.
type AuditRedis struct {
	// Addr is the host:port of the Redis server.
	Addr string `mapstructure:"addr"`
	// Password for AUTH, if any.
	Password string `mapstructure:"password" mask:"password"`
	// DB is the logical database number.
	DB int `mapstructure:"db"`
	// Prefix is prepended to every key.
	Prefix string `mapstructure:"prefix"`
}

// Catalog holds the reference data products point at.
type Catalog struct {
	Categories []CatalogItem `mapstructure:"categories" validate:"dive"`
	Brands     []CatalogItem `mapstructure:"brands"     validate:"dive"`
}

// CatalogItem is a seeded category or brand.
type CatalogItem struct {
	ID   int64  `mapstructure:"id"   validate:"required,gt=0"`
	Name string `mapstructure:"name" validate:"required"`
}

// NATSAuth holds client-side authentication settings for connecting to NATS.
type NATSAuth struct {
	// Type is the auth method: "none" or "user_pass".
	Type string `mapstructure:"type"`
	// Username for user_pass auth.
	Username string `mapstructure:"username"`
	// Password for user_pass auth.
	Password string `mapstructure:"password"  mask:"password"`
}

// NATSServerUser represents an allowed username/password pair for the NATS server.
type NATSServerUser struct {
	// Username for the user.
	Username string `mapstructure:"username"`
	// Password for the user.
	Password string `mapstructure:"password" mask:"password"`
}

// NATS configuration settings.
type NATS struct {
	Server NATSServer `mapstructure:"server,omitempty" mask:"struct"`
}

// NATSServer configuration settings for the embedded NATS server.
type NATSServer struct {
	// Host the server will bind to.
	Host string `mapstructure:"host"`
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// StoreDir the directory for JetStream file storage.
	StoreDir string `mapstructure:"store_dir"`
	// Users allowed to connect. Empty means no authentication.
	Users []NATSServerUser `mapstructure:"users" mask:"struct"`
}

// NATSConnection is a reusable NATS connection configuration block.
type NATSConnection struct {
	// Host the NATS server hostname.
	Host string `mapstructure:"host"`
	// Port the NATS server port.
	Port int `mapstructure:"port"`
	// ClientName the NATS client name for identification.
	ClientName string `mapstructure:"client_name"`
	// Auth holds client-side authentication configuration.
	Auth NATSAuth `mapstructure:"auth,omitempty" mask:"struct"`
}

// API configuration settings.
type API struct {
	Client
	Server `mask:"struct"`
}

// Client configuration settings.
type Client struct {
	// URL the client will connect to
	URL string `mapstructure:"url"`
	// Security contains security-related configuration for the client, such as access tokens.
	Security ClientSecurity `mapstructure:"security" mask:"struct"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"omitempty,gt=0,lte=65535"`
	// Security contains security-related configuration for the server, such as CORS and tokens.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
	// Users who may log in.
	Users []User `mapstructure:"users" validate:"dive" mask:"struct"`
}

// User is a login account seeded from configuration.
type User struct {
	// Email is the login name and the audit actor.
	Email string `mapstructure:"email" validate:"required,email"`
	// PasswordHash is a bcrypt hash, see "bazaar password hash".
	PasswordHash string `mapstructure:"password_hash" validate:"required" mask:"password"`
	// Roles granted in issued tokens.
	Roles []string `mapstructure:"roles" validate:"required,min=1"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing or validating tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required" mask:"password"`
	// TokenTTL is how long issued login tokens stay valid, e.g. "12h".
	TokenTTL string `mapstructure:"token_ttl"`
}

// ClientSecurity represents security-related settings for the client.
type ClientSecurity struct {
	// BearerToken is the JWT used for role-based access control.
	BearerToken string `mapstructure:"bearer_token" mask:"password"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}
