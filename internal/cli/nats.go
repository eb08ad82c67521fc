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

// Package cli provides shared utilities for CLI startup commands.
package cli

import (
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/retr0h/bazaar/internal/config"
)

// DefaultAuditBucket is used when no bucket name is configured.
const DefaultAuditBucket = "bazaar-audit"

// ParseStorageType maps "memory"/"file" strings to nats.StorageType.
func ParseStorageType(
	s string,
) nats.StorageType {
	if s == "memory" {
		return nats.MemoryStorage
	}

	return nats.FileStorage
}

// NATSURL builds a nats:// URL from a connection block.
func NATSURL(
	conn config.NATSConnection,
) string {
	return fmt.Sprintf("nats://%s:%d", conn.Host, conn.Port)
}

// BuildNATSOptions converts a connection block into nats.Option values.
func BuildNATSOptions(
	conn config.NATSConnection,
) []nats.Option {
	opts := []nats.Option{}
	if conn.ClientName != "" {
		opts = append(opts, nats.Name(conn.ClientName))
	}

	if conn.Auth.Type == "user_pass" {
		opts = append(opts, nats.UserInfo(conn.Auth.Username, conn.Auth.Password))
	}

	return opts
}

// BuildAuditKVConfig builds a nats.KeyValueConfig from audit config values.
func BuildAuditKVConfig(
	auditCfg config.AuditNATS,
) *nats.KeyValueConfig {
	bucket := auditCfg.Bucket
	if bucket == "" {
		bucket = DefaultAuditBucket
	}

	replicas := auditCfg.Replicas
	if replicas < 1 {
		replicas = 1
	}

	return &nats.KeyValueConfig{
		Bucket:      bucket,
		Description: "bazaar audit trail",
		Storage:     ParseStorageType(auditCfg.Storage),
		Replicas:    replicas,
	}
}

// CloseNATSConn drains and closes nc when it is open.
func CloseNATSConn(
	nc *nats.Conn,
) error {
	if nc == nil || nc.IsClosed() {
		return nil
	}

	return nc.Drain()
}
