// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/migrations"
)

// DB is an open relational connection together with its dialect specifics:
// the placeholder style used by the query builder and the driver error
// classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassificator, log *logger.Logger) *DB {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == migrations.DialectPostgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            builder,
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// sqlConn is the connection slot shared by every repository of one storage.
// It stays empty until Initialize succeeds.
type sqlConn struct {
	mu sync.RWMutex
	db *DB
}

func (c *sqlConn) get() (*DB, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return nil, ErrNotInitialized
	}
	return c.db, nil
}

func (c *sqlConn) set(db *DB) {
	c.mu.Lock()
	c.db = db
	c.mu.Unlock()
}

func (c *sqlConn) take() *DB {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.db
	c.db = nil
	return db
}
