// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/models"
)

// redisStorage is the key-value [Storage] backed by Redis.
type redisStorage struct {
	cfg config.KV

	initMu sync.Mutex
	conn   *kvConn

	users   *kvUserRepository
	records *kvTable[models.Record, recordRow]
	budgets *kvTable[models.Budget, budgetRow]
	values  *kvValueStore

	logger *logger.Logger
}

// NewRedisStorage returns an unopened Redis storage. Keys are namespaced
// by cfg.KeyPrefix.
func NewRedisStorage(cfg config.KV, log *logger.Logger, opts ...Option) Storage {
	o := buildOptions(opts)
	conn := &kvConn{}

	return &redisStorage{
		cfg:     cfg,
		conn:    conn,
		users:   &kvUserRepository{newKVTable(conn, cfg.KeyPrefix, userKVSchema, o.clock, log)},
		records: newKVTable(conn, cfg.KeyPrefix, recordKVSchema, o.clock, log),
		budgets: newKVTable(conn, cfg.KeyPrefix, budgetKVSchema, o.clock, log),
		values:  &kvValueStore{conn: conn, prefix: cfg.KeyPrefix, logger: log},
		logger:  log,
	}
}

// Initialize connects to Redis once. There is no schema to create.
func (s *redisStorage) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if _, err := s.conn.get(); err == nil {
		return nil
	}

	client, err := NewConnectRedis(ctx, s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("error opening redis storage: %w", err)
	}

	s.conn.set(client)
	s.logger.Info().Str("func", "redisStorage.Initialize").Str("prefix", s.cfg.KeyPrefix).Msg("storage initialized")
	return nil
}

func (s *redisStorage) Users() UserRepository     { return s.users }
func (s *redisStorage) Records() RecordRepository { return s.records }
func (s *redisStorage) Budgets() BudgetRepository { return s.budgets }
func (s *redisStorage) Values() ValueStore        { return s.values }

// Close closes the client. Closing an unopened storage is a no-op.
func (s *redisStorage) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	client := s.conn.take()
	if client == nil {
		return nil
	}
	return client.Close()
}
