// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendSQLite, BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: empty DSN for %s backend", ErrInvalidStorageConfigs, cfg.Storage.Backend)
		}
	case BackendRedis:
		if cfg.Storage.KV.Address == "" {
			return fmt.Errorf("%w: empty redis address", ErrInvalidStorageConfigs)
		}
		if cfg.Storage.KV.DB < 0 {
			return fmt.Errorf("%w: negative redis db index", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.MonitorInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	return nil
}
