// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/models"
)

// kvValueStore keeps each value under its own Redis string key.
type kvValueStore struct {
	conn   *kvConn
	prefix string
	logger *logger.Logger
}

func (v *kvValueStore) key(name string) string {
	return kvKey(v.prefix, models.TableValues, name)
}

// Get returns the value stored under key.
//
// Error handling:
//   - missing key (redis.Nil) → [ErrNotFound].
//   - any other client error → wrapped [ErrReadingKey].
func (v *kvValueStore) Get(ctx context.Context, key string) (string, error) {
	client, err := v.conn.get()
	if err != nil {
		return "", err
	}

	value, err := client.Get(ctx, v.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "kvValueStore.Get").Str("key", key).Msg("failed to read value")
		return "", fmt.Errorf("%w: %w", ErrReadingKey, err)
	}
	return value, nil
}

// Set stores value under key without expiry.
func (v *kvValueStore) Set(ctx context.Context, key, value string) error {
	client, err := v.conn.get()
	if err != nil {
		return err
	}

	if err = client.Set(ctx, v.key(key), value, 0).Err(); err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "kvValueStore.Set").Str("key", key).Msg("failed to write value")
		return fmt.Errorf("%w: %w", ErrWritingKey, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (v *kvValueStore) Delete(ctx context.Context, key string) error {
	client, err := v.conn.get()
	if err != nil {
		return err
	}

	if err = client.Del(ctx, v.key(key)).Err(); err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "kvValueStore.Delete").Str("key", key).Msg("failed to delete value")
		return fmt.Errorf("%w: %w", ErrWritingKey, err)
	}
	return nil
}
