// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ahorra/internal/logger"
)

// sqlTable is the relational implementation of [Repository] for one table.
// Every public method obtains a context-scoped logger so database failures
// are traced with the table name and the row id.
type sqlTable[T entity[T]] struct {
	conn   *sqlConn
	schema sqlSchema[T]
	clock  Clock
	logger *logger.Logger
}

func newSQLTable[T entity[T]](conn *sqlConn, schema sqlSchema[T], clock Clock, log *logger.Logger) *sqlTable[T] {
	return &sqlTable[T]{
		conn:   conn,
		schema: schema,
		clock:  clock,
		logger: log,
	}
}

// GetAll returns every row ordered by id, newest first. An empty table
// yields an empty, non-nil slice.
//
// Error handling:
//   - storage not initialized → [ErrNotInitialized].
//   - query build failure → wrapped [ErrBuildingSQLQuery].
//   - driver-level query error → wrapped [ErrExecutingQuery], logged with
//     its classification.
//   - scan or iteration failure → wrapped [ErrScanningRow] or
//     [ErrScanningRows].
func (t *sqlTable[T]) GetAll(ctx context.Context) ([]T, error) {
	log := logger.Ctx(ctx, t.logger)

	db, err := t.conn.get()
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectAllQuery(db.builder, t.schema)
	if err != nil {
		log.Err(err).Str("func", "sqlTable.GetAll").Str("table", t.schema.table).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlTable.GetAll").
			Str("table", t.schema.table).
			Stringer("classification", db.classify(err)).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, scanErr := t.schema.scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "sqlTable.GetAll").Str("table", t.schema.table).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "sqlTable.GetAll").Str("table", t.schema.table).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// Get returns the row with id.
//
// Error handling:
//   - no matching row → [ErrNotFound] (not logged).
//   - any other driver-level error → wrapped [ErrScanningRow].
func (t *sqlTable[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	log := logger.Ctx(ctx, t.logger)

	db, err := t.conn.get()
	if err != nil {
		return zero, err
	}

	query, args, err := buildSelectByIDQuery(db.builder, t.schema, id)
	if err != nil {
		log.Err(err).Str("func", "sqlTable.Get").Str("table", t.schema.table).Msg("failed to build query")
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := t.schema.scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sqlTable.Get").Str("table", t.schema.table).Int64("id", id).Msg("failed to get row")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// Add inserts item and returns it with the generated id and the creation
// time taken from the storage clock. The id and creation time carried by
// item are ignored.
//
// Error handling:
//   - unique violation → the schema's conflict error, for example
//     [ErrEmailAlreadyExists] on the users table.
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (t *sqlTable[T]) Add(ctx context.Context, item T) (T, error) {
	var zero T
	log := logger.Ctx(ctx, t.logger)

	db, err := t.conn.get()
	if err != nil {
		return zero, err
	}

	createdAt := t.clock()
	query, args, err := buildInsertQuery(db.builder, t.schema, item, createdAt)
	if err != nil {
		log.Err(err).Str("func", "sqlTable.Add").Str("table", t.schema.table).Msg("failed to build query")
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return zero, t.writeError(ctx, db, "sqlTable.Add", 0, err)
	}

	return item.WithIdentity(id, createdAt), nil
}

// Update replaces the mutable columns of the row with item's id. The
// creation time is never rewritten.
//
// Error handling:
//   - no row with that id → [ErrNotFound].
//   - unique violation → the schema's conflict error.
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (t *sqlTable[T]) Update(ctx context.Context, item T) error {
	log := logger.Ctx(ctx, t.logger)

	db, err := t.conn.get()
	if err != nil {
		return err
	}

	query, args, err := buildUpdateQuery(db.builder, t.schema, item.GetID(), item)
	if err != nil {
		log.Err(err).Str("func", "sqlTable.Update").Str("table", t.schema.table).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return t.writeError(ctx, db, "sqlTable.Update", item.GetID(), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "sqlTable.Update").Str("table", t.schema.table).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the row with id; deleting a missing row is a no-op.
func (t *sqlTable[T]) Delete(ctx context.Context, id int64) error {
	db, err := t.conn.get()
	if err != nil {
		return err
	}

	query, args, err := buildDeleteQuery(db.builder, t.schema.table, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.exec(ctx, db, "sqlTable.Delete", id, query, args)
}

// DeleteAll empties the table. Sequences are not reset.
func (t *sqlTable[T]) DeleteAll(ctx context.Context) error {
	db, err := t.conn.get()
	if err != nil {
		return err
	}

	query, args, err := buildDeleteAllQuery(db.builder, t.schema.table)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.exec(ctx, db, "sqlTable.DeleteAll", 0, query, args)
}

func (t *sqlTable[T]) exec(ctx context.Context, db *DB, fn string, id int64, query string, args []any) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return t.writeError(ctx, db, fn, id, err)
	}
	return nil
}

// writeError logs a failed write and maps unique violations to the schema's
// conflict error.
func (t *sqlTable[T]) writeError(ctx context.Context, db *DB, fn string, id int64, err error) error {
	classification := db.classify(err)

	logger.Ctx(ctx, t.logger).Err(err).
		Str("func", fn).
		Str("table", t.schema.table).
		Int64("id", id).
		Stringer("classification", classification).
		Msg("failed to execute statement")

	if classification == Conflict && t.schema.conflictErr != nil {
		return t.schema.conflictErr
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}
