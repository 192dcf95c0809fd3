// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Defaults applied when no source sets a value.
const (
	DefaultBackend         = BackendSQLite
	DefaultDSN             = "ahorra.db"
	DefaultKVAddress       = "localhost:6379"
	DefaultKVKeyPrefix     = "ahorra"
	DefaultHTTPAddress     = "localhost:8080"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultMonitorInterval = time.Minute
	DefaultLogLevel        = "info"
	DefaultBcryptCost      = 10
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs; mergo only fills zero fields, so
// configs appended earlier take precedence.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			LogLevel:   DefaultLogLevel,
			BcryptCost: DefaultBcryptCost,
		},
		Storage: Storage{
			Backend: DefaultBackend,
			DB:      DB{DSN: DefaultDSN},
			KV: KV{
				Address:   DefaultKVAddress,
				KeyPrefix: DefaultKVKeyPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{MonitorInterval: DefaultMonitorInterval},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
	})
	return b
}
