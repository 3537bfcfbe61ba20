// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the remote store server. It is populated by merging values
// from environment variables, command-line flags, an optional JSON file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the server database and the client local store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and timeouts of the remote store server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the remote store endpoint.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the synchronisation engine settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Client holds credentials and run mode of the sync client.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey signs and verifies session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an issued token (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is where the client appends its log.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB is the remote store PostgreSQL database.
	DB DB `envPrefix:"DB_"`

	// Local is the client's embedded SQLite store.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client's SQLite settings.
type Local struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the remote store server.
type Server struct {
	// HTTPAddress is the "host:port" the server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter holds the remote store endpoint used by the client.
type Adapter struct {
	// HTTPAddress is the base URL or "host:port" of the remote store.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the synchronisation engine settings.
type Sync struct {
	// Interval is the period of the background sync job.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// AutoResolve enables bulk conflict resolution at the end of a cycle.
	// Nil means unset; the default is enabled.
	// Env: SYNC_AUTO_RESOLVE
	AutoResolve *bool `env:"AUTO_RESOLVE"`

	// DefaultStrategy is the strategy used by automatic resolution
	// (local-wins, server-wins, manual).
	// Env: SYNC_DEFAULT_STRATEGY
	DefaultStrategy string `env:"DEFAULT_STRATEGY"`

	// PurgeTombstones physically removes deleted records once both sides
	// recorded the deletion.
	// Env: SYNC_PURGE_TOMBSTONES
	PurgeTombstones bool `env:"PURGE_TOMBSTONES"`

	// RetryBase is the first backoff delay of a failed queue replay.
	// Env: SYNC_RETRY_BASE
	RetryBase time.Duration `env:"RETRY_BASE"`

	// RetryMax caps the backoff delay.
	// Env: SYNC_RETRY_MAX
	RetryMax time.Duration `env:"RETRY_MAX"`

	// ConnectivityInterval is how often the remote store is probed.
	// Env: SYNC_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`

	// QueueFile switches queue persistence from the SQLite table to a JSON
	// file at this path.
	// Env: SYNC_QUEUE_FILE
	QueueFile string `env:"QUEUE_FILE"`
}

// Client holds credentials and the run mode of the sync client.
type Client struct {
	// Env: CLIENT_LOGIN
	Login string `env:"LOGIN"`
	// Env: CLIENT_PASSWORD
	Password string `env:"PASSWORD"`
	// Register creates the account before logging in.
	Register bool `env:"REGISTER"`
	// Once runs a single sync cycle and exits.
	Once bool `env:"ONCE"`
	// Direction restricts a single cycle to push or pull.
	Direction string `env:"DIRECTION"`
	// Force ignores pull cursors in a single cycle.
	Force bool `env:"FORCE"`
}

// GetStructuredConfig loads, merges and validates the configuration.
// Sources in priority order (earlier wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
