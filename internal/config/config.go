// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage backends accepted by [Storage.Backend].
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// StructuredConfig is the top-level configuration container for the
// go-ahorra application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings: log level, log file and the bcrypt cost.
	App App `envPrefix:"APP_"`

	// Storage selects the persistence backend and carries its connection
	// settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listen address and request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Adapter holds the outbound settings ahorractl uses to reach a server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile, when set, redirects logs from stdout to the given file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// BcryptCost is the work factor used when hashing user passwords.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`
}

// Storage groups the configuration for all storage backends used by the
// application. Only the section matching Backend is read.
type Storage struct {
	// Backend is one of [BackendSQLite], [BackendPostgres] or [BackendRedis].
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// KV holds the Redis connection settings.
	KV KV `envPrefix:"KV_"`
}

// DB holds connection settings for the relational backends.
type DB struct {
	// DSN is a SQLite file path (or ":memory:") for the sqlite backend, or a
	// PostgreSQL connection string for the postgres backend.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// KV holds connection settings for the Redis backend.
type KV struct {
	// Address is the Redis server address in "host:port" format.
	// Env: STORAGE_KV_ADDRESS
	Address string `env:"ADDRESS"`

	// Password is the optional Redis AUTH password.
	// Env: STORAGE_KV_PASSWORD
	Password string `env:"PASSWORD"`

	// DB is the Redis logical database index.
	// Env: STORAGE_KV_DB
	DB int `env:"DB"`

	// KeyPrefix namespaces every key written by the application.
	// Env: STORAGE_KV_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// MonitorInterval is how often the budget monitor re-evaluates budgets.
	// Env: WORKERS_MONITOR_INTERVAL
	MonitorInterval time.Duration `env:"MONITOR_INTERVAL"`
}

// Adapter holds configuration for the outbound API client.
type Adapter struct {
	// HTTPAddress is the ahorra server the client talks to, either
	// "host:port" or a full base URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request made by the client.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. For each field the first
// non-zero value wins, in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
