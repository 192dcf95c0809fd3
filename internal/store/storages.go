// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/migrations"
)

// NewStorage builds the [Storage] selected by cfg.Backend. The returned
// storage is not opened yet; call [Storage.Initialize] before use.
func NewStorage(cfg config.Storage, log *logger.Logger, opts ...Option) (Storage, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating new storage...")

	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLStorage(migrations.DialectSQLite, cfg.DB.DSN, log, opts...)
	case config.BackendPostgres:
		return NewSQLStorage(migrations.DialectPostgres, cfg.DB.DSN, log, opts...)
	case config.BackendRedis:
		return NewRedisStorage(cfg.KV, log, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
