// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
)

// NewConnectRedis opens a Redis client and verifies it with PING.
func NewConnectRedis(ctx context.Context, cfg config.KV, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Str("addr", cfg.Address).Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Debug().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return client, nil
}

// kvConn is the client slot shared by every repository of one Redis storage.
type kvConn struct {
	mu     sync.RWMutex
	client *redis.Client
}

func (c *kvConn) get() (*redis.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.client == nil {
		return nil, ErrNotInitialized
	}
	return c.client, nil
}

func (c *kvConn) set(client *redis.Client) {
	c.mu.Lock()
	c.client = client
	c.mu.Unlock()
}

func (c *kvConn) take() *redis.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	client := c.client
	c.client = nil
	return client
}
