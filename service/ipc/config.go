// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// Default configuration values for the embedded NATS server.
const (
	DefaultServiceName        = "ipc"
	DefaultServiceDescription = "embedded NATS message bus for daemon service-to-service communication"
	DefaultServiceVersion     = "1.0.0"
	DefaultServerName         = "coolercontrold-ipc"
	DefaultStoreDir           = "/var/lib/coolercontrold/ipc"
	DefaultMaxMemory          = int64(64 * 1024 * 1024)
	DefaultMaxStorage         = int64(256 * 1024 * 1024)
	DefaultStartupTimeout     = 5 * time.Second
	DefaultShutdownTimeout    = 5 * time.Second
)

// config carries every tunable of the embedded NATS server.
type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string

	serverName string
	storeDir   string

	enableJetStream bool
	dontListen      bool

	maxMemory  int64
	maxStorage int64

	startupTimeout  time.Duration
	shutdownTimeout time.Duration

	maxConnections int
	maxControlLine int32
	maxPayload     int32

	writeDeadline time.Duration
	pingInterval  time.Duration
	maxPingsOut   int

	enableSlowConsumerDetection bool
	slowConsumerThreshold       time.Duration
}

// Validate reports whether the configuration can be turned into a working
// NATS server.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return fmt.Errorf("%w: service name cannot be empty", ErrInvalidServerName)
	}
	if c.serverName == "" {
		return fmt.Errorf("%w: server name cannot be empty", ErrInvalidServerName)
	}
	if c.enableJetStream && c.storeDir == "" {
		return fmt.Errorf("%w: JetStream requires a store directory", ErrStorageDirInvalid)
	}
	if c.startupTimeout <= 0 {
		return fmt.Errorf("%w: startup timeout must be positive", ErrInvalidTimeout)
	}
	if c.shutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidTimeout)
	}
	return nil
}

// ToServerOptions translates config into the nats-server options struct.
func (c *config) ToServerOptions() *server.Options {
	return &server.Options{
		ServerName:         c.serverName,
		JetStream:          c.enableJetStream,
		StoreDir:           c.storeDir,
		DontListen:         c.dontListen,
		JetStreamMaxMemory: c.maxMemory,
		JetStreamMaxStore:  c.maxStorage,
		MaxConn:            c.maxConnections,
		MaxControlLine:     c.maxControlLine,
		MaxPayload:         c.maxPayload,
		WriteDeadline:      c.writeDeadline,
		PingInterval:       c.pingInterval,
		MaxPingsOut:        c.maxPingsOut,
	}
}

// Option configures the IPC service.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithServiceName sets the name the service reports via service.Service.
func WithServiceName(name string) Option {
	return optionFunc(func(c *config) { c.serviceName = name })
}

// WithServiceDescription sets a human-readable description of the service.
func WithServiceDescription(description string) Option {
	return optionFunc(func(c *config) { c.serviceDescription = description })
}

// WithServerName sets the NATS server's own identity.
func WithServerName(name string) Option {
	return optionFunc(func(c *config) { c.serverName = name })
}

// WithStoreDir sets the JetStream persistence directory.
func WithStoreDir(dir string) Option {
	return optionFunc(func(c *config) { c.storeDir = dir })
}

// WithJetStream enables or disables JetStream persistence.
func WithJetStream(enabled bool) Option {
	return optionFunc(func(c *config) { c.enableJetStream = enabled })
}

// WithMaxMemory sets the JetStream in-memory storage ceiling.
func WithMaxMemory(bytes int64) Option {
	return optionFunc(func(c *config) { c.maxMemory = bytes })
}

// WithMaxStorage sets the JetStream on-disk storage ceiling.
func WithMaxStorage(bytes int64) Option {
	return optionFunc(func(c *config) { c.maxStorage = bytes })
}

// WithStartupTimeout sets how long Run waits for the server to become ready.
func WithStartupTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *config) { c.startupTimeout = timeout })
}

// WithShutdownTimeout sets how long shutdown waits before forcing the server down.
func WithShutdownTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *config) { c.shutdownTimeout = timeout })
}

// WithMaxConnections caps concurrent client connections; 0 means unlimited.
func WithMaxConnections(max int) Option {
	return optionFunc(func(c *config) { c.maxConnections = max })
}
