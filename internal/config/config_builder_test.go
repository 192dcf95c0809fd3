// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a config with no backend fails validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_DefaultsOnly verifies that defaults alone form a valid config.
func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultKVKeyPrefix, cfg.Storage.KV.KeyPrefix)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultMonitorInterval, cfg.Workers.MonitorInterval)
	assert.Equal(t, DefaultBcryptCost, cfg.App.BcryptCost)
	assert.Equal(t, DefaultHTTPAddress, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{LogLevel: "debug"}},
		&StructuredConfig{Storage: Storage{Backend: BackendRedis}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, DefaultKVAddress, cfg.Storage.KV.Address)
}

// TestBuild_EarlierSourceWins verifies that an earlier non-zero field is not
// overwritten by later sources.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:1"}},
		&StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:2", RequestTimeout: time.Second}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg, err := newConfigBuilder().withDefaults().build()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "unknown backend",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Backend = "mongo" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "postgres without dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Backend = BackendPostgres; cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "redis without address",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Backend = BackendRedis; cfg.Storage.KV.Address = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:   "redis ignores empty dsn",
			mutate: func(cfg *StructuredConfig) { cfg.Storage.Backend = BackendRedis; cfg.Storage.DB.DSN = "" },
		},
		{
			name:    "zero request timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "empty adapter address",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.HTTPAddress = "" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero monitor interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.MonitorInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *StructuredConfig) { cfg.App.LogLevel = "loud" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.App.BcryptCost = 1 },
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("STORAGE_BACKEND", "redis")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "warn", b.configs[0].App.LogLevel)
	assert.Equal(t, "redis", b.configs[0].Storage.Backend)
}

// TestWithEnv_SetsErrorOnBadValue verifies that a malformed env var is
// recorded as a builder error.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("WORKERS_MONITOR_INTERVAL", "often")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	defer func() { os.Args = oldArgs }()

	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
	assert.Len(t, b.configs, 1)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.LogLevel = "error"
	payload.Storage.Backend = "postgres"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "error", b.configs[1].App.LogLevel)
	assert.Equal(t, "postgres", b.configs[1].Storage.Backend)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the path from the highest
// priority source is used.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.LogLevel = "debug"
	firstPath := writeTempJSONConfig(t, first)

	second := StructuredJSONConfig{}
	second.App.LogLevel = "error"
	secondPath := writeTempJSONConfig(t, second)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: firstPath},
		&StructuredConfig{JSONFilePath: secondPath},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "debug", b.configs[3].App.LogLevel)
}

// TestWithJSON_KeepsPreviousError verifies that a pre-existing builder error
// is preserved.
func TestWithJSON_KeepsPreviousError(t *testing.T) {
	path := writeTempJSONConfig(t, StructuredJSONConfig{})

	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	assert.ErrorIs(t, b.err, assert.AnError)
}

// TestBuild_JSONBelowEnv verifies the full env > JSON > defaults chain.
func TestBuild_JSONBelowEnv(t *testing.T) {
	clearEnvVars(t)
	payload := StructuredJSONConfig{}
	payload.App.LogLevel = "error"
	payload.Server.HTTPAddress = "127.0.0.1:7000"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("CONFIG", path)
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := newConfigBuilder().withEnv().withJSON().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultBackend, cfg.Storage.Backend)
}
