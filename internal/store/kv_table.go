// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-ahorra/internal/logger"
)

// kvTable is the Redis implementation of [Repository]. A table is one JSON
// array under key, newest row first; ids come from INCR on key+":seq".
// Writes are read-modify-write under mu, which only serializes callers of
// this process.
type kvTable[T entity[T], R any] struct {
	conn   *kvConn
	key    string
	schema kvSchema[T, R]
	clock  Clock
	logger *logger.Logger

	mu sync.Mutex
}

func newKVTable[T entity[T], R any](conn *kvConn, prefix string, schema kvSchema[T, R], clock Clock, log *logger.Logger) *kvTable[T, R] {
	return &kvTable[T, R]{
		conn:   conn,
		key:    kvKey(prefix, schema.table),
		schema: schema,
		clock:  clock,
		logger: log,
	}
}

func kvKey(prefix string, parts ...string) string {
	key := prefix
	for _, p := range parts {
		if key == "" {
			key = p
			continue
		}
		key += ":" + p
	}
	return key
}

func (t *kvTable[T, R]) seqKey() string {
	return t.key + ":seq"
}

func (t *kvTable[T, R]) load(ctx context.Context, client *redis.Client) ([]R, error) {
	raw, err := client.Get(ctx, t.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []R{}, nil
	}
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "kvTable.load").Str("key", t.key).Msg("failed to read rows")
		return nil, fmt.Errorf("%w: %w", ErrReadingKey, err)
	}

	var rows []R
	if err = json.Unmarshal(raw, &rows); err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "kvTable.load").Str("key", t.key).Msg("failed to decode rows")
		return nil, fmt.Errorf("%w: %w", ErrDecodingRows, err)
	}
	if rows == nil {
		rows = []R{}
	}

	return rows, nil
}

func (t *kvTable[T, R]) save(ctx context.Context, client *redis.Client, rows []R) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingKey, err)
	}

	if err = client.Set(ctx, t.key, payload, 0).Err(); err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "kvTable.save").Str("key", t.key).Msg("failed to write rows")
		return fmt.Errorf("%w: %w", ErrWritingKey, err)
	}

	return nil
}

func (t *kvTable[T, R]) indexOf(rows []R, id int64) int {
	for i, row := range rows {
		if t.schema.rowID(row) == id {
			return i
		}
	}
	return -1
}

// GetAll returns every row, newest first. A missing key is an empty table.
func (t *kvTable[T, R]) GetAll(ctx context.Context) ([]T, error) {
	client, err := t.conn.get()
	if err != nil {
		return nil, err
	}

	rows, err := t.load(ctx, client)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, t.schema.fromRow(row))
	}
	return items, nil
}

// Get returns the row with id or [ErrNotFound].
func (t *kvTable[T, R]) Get(ctx context.Context, id int64) (T, error) {
	var zero T

	client, err := t.conn.get()
	if err != nil {
		return zero, err
	}

	rows, err := t.load(ctx, client)
	if err != nil {
		return zero, err
	}

	i := t.indexOf(rows, id)
	if i < 0 {
		return zero, ErrNotFound
	}
	return t.schema.fromRow(rows[i]), nil
}

// Add prepends item with the next sequence id and the storage clock's time.
//
// The conflict check, the INCR and the write happen under mu, so two adds
// from this process cannot both pass the check. A failed write after the
// INCR leaves a gap in the id sequence.
//
// Error handling:
//   - conflict with an existing row → the schema's conflict error.
//   - INCR or SET failure → wrapped [ErrWritingKey].
func (t *kvTable[T, R]) Add(ctx context.Context, item T) (T, error) {
	var zero T

	client, err := t.conn.get()
	if err != nil {
		return zero, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.load(ctx, client)
	if err != nil {
		return zero, err
	}

	if t.schema.conflict != nil {
		if err = t.schema.conflict(rows, item, 0); err != nil {
			return zero, err
		}
	}

	id, err := client.Incr(ctx, t.seqKey()).Result()
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "kvTable.Add").Str("key", t.seqKey()).Msg("failed to allocate id")
		return zero, fmt.Errorf("%w: %w", ErrWritingKey, err)
	}

	stored := item.WithIdentity(id, t.clock())
	rows = append([]R{t.schema.toRow(stored)}, rows...)

	if err = t.save(ctx, client, rows); err != nil {
		return zero, err
	}
	return stored, nil
}

// Update merges item into the stored row with the same id. Fields the schema
// treats as immutable, such as the creation time, keep their stored values.
//
// Error handling:
//   - no row with that id → [ErrNotFound].
//   - conflict with another row → the schema's conflict error.
func (t *kvTable[T, R]) Update(ctx context.Context, item T) error {
	client, err := t.conn.get()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.load(ctx, client)
	if err != nil {
		return err
	}

	i := t.indexOf(rows, item.GetID())
	if i < 0 {
		return ErrNotFound
	}

	if t.schema.conflict != nil {
		if err = t.schema.conflict(rows, item, item.GetID()); err != nil {
			return err
		}
	}

	rows[i] = t.schema.merge(rows[i], item)
	return t.save(ctx, client, rows)
}

// Delete removes the row with id; deleting a missing row is a no-op.
func (t *kvTable[T, R]) Delete(ctx context.Context, id int64) error {
	client, err := t.conn.get()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.load(ctx, client)
	if err != nil {
		return err
	}

	i := t.indexOf(rows, id)
	if i < 0 {
		return nil
	}

	rows = append(rows[:i], rows[i+1:]...)
	return t.save(ctx, client, rows)
}

// DeleteAll drops the list. The id sequence is kept.
func (t *kvTable[T, R]) DeleteAll(ctx context.Context) error {
	client, err := t.conn.get()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err = client.Del(ctx, t.key).Err(); err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "kvTable.DeleteAll").Str("key", t.key).Msg("failed to delete rows")
		return fmt.Errorf("%w: %w", ErrWritingKey, err)
	}
	return nil
}
