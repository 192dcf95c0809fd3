// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

func buildSelectAllQuery[T any](b sq.StatementBuilderType, s sqlSchema[T]) (string, []any, error) {
	return b.Select(s.selectColumns()...).
		From(s.table).
		OrderBy(columnID + " DESC").
		ToSql()
}

func buildSelectByIDQuery[T any](b sq.StatementBuilderType, s sqlSchema[T], id int64) (string, []any, error) {
	return b.Select(s.selectColumns()...).
		From(s.table).
		Where(sq.Eq{columnID: id}).
		ToSql()
}

func buildInsertQuery[T any](b sq.StatementBuilderType, s sqlSchema[T], item T, createdAt time.Time) (string, []any, error) {
	columns := append(append([]string{}, s.insertColumns...), columnCreatedAt)
	values := append(s.insertValues(item), createdAt)

	return b.Insert(s.table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING " + columnID).
		ToSql()
}

func buildUpdateQuery[T any](b sq.StatementBuilderType, s sqlSchema[T], id int64, item T) (string, []any, error) {
	query := b.Update(s.table)
	values := s.updateValues(item)
	for i, column := range s.updateColumns {
		query = query.Set(column, values[i])
	}

	return query.Where(sq.Eq{columnID: id}).ToSql()
}

func buildDeleteQuery(b sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	return b.Delete(table).Where(sq.Eq{columnID: id}).ToSql()
}

func buildDeleteAllQuery(b sq.StatementBuilderType, table string) (string, []any, error) {
	return b.Delete(table).ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userSchema.selectColumns()...).
		From(userSchema.table).
		Where(sq.Eq{usersColumnEmail: email}).
		ToSql()
}

func buildUpdateUserPasswordQuery(b sq.StatementBuilderType, email, passwordHash string) (string, []any, error) {
	return b.Update(userSchema.table).
		Set(usersColumnPassword, passwordHash).
		Where(sq.Eq{usersColumnEmail: email}).
		ToSql()
}

func buildGetValueQuery(b sq.StatementBuilderType, table, key string) (string, []any, error) {
	return b.Select(valuesColumnValue).
		From(table).
		Where(sq.Eq{valuesColumnKey: key}).
		ToSql()
}

// buildSetValueQuery upserts; the ON CONFLICT form is shared by SQLite and PostgreSQL.
func buildSetValueQuery(b sq.StatementBuilderType, table, key, value string) (string, []any, error) {
	return b.Insert(table).
		Columns(valuesColumnKey, valuesColumnValue).
		Values(key, value).
		Suffix("ON CONFLICT (" + valuesColumnKey + ") DO UPDATE SET " + valuesColumnValue + " = excluded." + valuesColumnValue).
		ToSql()
}

func buildDeleteValueQuery(b sq.StatementBuilderType, table, key string) (string, []any, error) {
	return b.Delete(table).Where(sq.Eq{valuesColumnKey: key}).ToSql()
}
