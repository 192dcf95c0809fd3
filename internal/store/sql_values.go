// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/models"
)

// sqlValueStore keeps key/value pairs in the valores table.
type sqlValueStore struct {
	conn   *sqlConn
	logger *logger.Logger
}

// Get returns the value stored under key, or [ErrNotFound].
func (v *sqlValueStore) Get(ctx context.Context, key string) (string, error) {
	db, err := v.conn.get()
	if err != nil {
		return "", err
	}

	query, args, err := buildGetValueQuery(db.builder, models.TableValues, key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "sqlValueStore.Get").Str("key", key).Msg("failed to read value")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

// Set stores value under key, replacing any previous value.
func (v *sqlValueStore) Set(ctx context.Context, key, value string) error {
	db, err := v.conn.get()
	if err != nil {
		return err
	}

	query, args, err := buildSetValueQuery(db.builder, models.TableValues, key, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "sqlValueStore.Set").Str("key", key).Msg("failed to write value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (v *sqlValueStore) Delete(ctx context.Context, key string) error {
	db, err := v.conn.get()
	if err != nil {
		return err
	}

	query, args, err := buildDeleteValueQuery(db.builder, models.TableValues, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "sqlValueStore.Delete").Str("key", key).Msg("failed to delete value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
