// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"regexp"

	"github.com/rs/zerolog"
)

const redacted = "xxxxx"

// dsnPasswordPattern matches the password pair of a libpq key=value DSN.
var dsnPasswordPattern = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

// MarshalZerologObject writes the configuration for logging with every
// credential removed: the Redis password is reduced to whether it is set and
// the DSN password is masked.
func (cfg *StructuredConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Dict("app", zerolog.Dict().
		Str("log_level", cfg.App.LogLevel).
		Str("log_file", cfg.App.LogFile).
		Int("bcrypt_cost", cfg.App.BcryptCost))

	e.Dict("storage", zerolog.Dict().
		Str("backend", cfg.Storage.Backend).
		Str("dsn", RedactDSN(cfg.Storage.DB.DSN)).
		Str("kv_address", cfg.Storage.KV.Address).
		Bool("kv_password_set", cfg.Storage.KV.Password != "").
		Int("kv_db", cfg.Storage.KV.DB).
		Str("kv_key_prefix", cfg.Storage.KV.KeyPrefix))

	e.Dict("server", zerolog.Dict().
		Str("http_address", cfg.Server.HTTPAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout))

	e.Dict("workers", zerolog.Dict().
		Dur("monitor_interval", cfg.Workers.MonitorInterval))

	e.Dict("adapter", zerolog.Dict().
		Str("http_address", cfg.Adapter.HTTPAddress).
		Dur("request_timeout", cfg.Adapter.RequestTimeout))

	e.Str("json_file", cfg.JSONFilePath)
}

// RedactDSN masks the password in a URL or key=value connection string.
// SQLite paths are returned unchanged.
func RedactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
		return u.String()
	}
	return dsnPasswordPattern.ReplaceAllString(dsn, "${1}"+redacted)
}
