// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/migrations"
	"github.com/MKhiriev/go-ahorra/models"
)

type connectFunc func(ctx context.Context, dsn string, log *logger.Logger) (*DB, error)

// sqlStorage is the relational [Storage]. The connection is opened by
// Initialize, not by the constructor.
type sqlStorage struct {
	dialect string
	dsn     string
	connect connectFunc

	initMu sync.Mutex
	conn   *sqlConn

	users   *sqlUserRepository
	records *sqlTable[models.Record]
	budgets *sqlTable[models.Budget]
	values  *sqlValueStore

	logger *logger.Logger
}

// NewSQLStorage returns an unopened relational storage for dialect
// ("sqlite" or "postgres").
func NewSQLStorage(dialect, dsn string, log *logger.Logger, opts ...Option) (Storage, error) {
	var connect connectFunc
	switch dialect {
	case migrations.DialectSQLite:
		connect = NewConnectSQLite
	case migrations.DialectPostgres:
		connect = NewConnectPostgres
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, dialect)
	}

	return newSQLStorage(dialect, dsn, connect, log, opts...), nil
}

func newSQLStorage(dialect, dsn string, connect connectFunc, log *logger.Logger, opts ...Option) *sqlStorage {
	o := buildOptions(opts)
	conn := &sqlConn{}

	return &sqlStorage{
		dialect: dialect,
		dsn:     dsn,
		connect: connect,
		conn:    conn,
		users:   &sqlUserRepository{newSQLTable(conn, userSchema, o.clock, log)},
		records: newSQLTable(conn, recordSchema, o.clock, log),
		budgets: newSQLTable(conn, budgetSchema, o.clock, log),
		values:  &sqlValueStore{conn: conn, logger: log},
		logger:  log,
	}
}

// Initialize opens the database and applies migrations once. Concurrent
// callers wait for the first one to finish.
func (s *sqlStorage) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if _, err := s.conn.get(); err == nil {
		return nil
	}

	db, err := s.connect(ctx, s.dsn, s.logger)
	if err != nil {
		return fmt.Errorf("error opening %s storage: %w", s.dialect, err)
	}

	if err = db.Migrate(ctx); err != nil {
		s.logger.Err(err).Str("func", "sqlStorage.Initialize").Msg("migration failed")
		_ = db.Close()
		return fmt.Errorf("migration failed: %w", err)
	}

	s.conn.set(db)
	s.logger.Info().Str("func", "sqlStorage.Initialize").Str("dialect", s.dialect).Msg("storage initialized")
	return nil
}

func (s *sqlStorage) Users() UserRepository     { return s.users }
func (s *sqlStorage) Records() RecordRepository { return s.records }
func (s *sqlStorage) Budgets() BudgetRepository { return s.budgets }
func (s *sqlStorage) Values() ValueStore        { return s.values }

// Close closes the database. Closing an unopened storage is a no-op.
func (s *sqlStorage) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	db := s.conn.take()
	if db == nil {
		return nil
	}
	return db.Close()
}
