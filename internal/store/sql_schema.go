// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/MKhiriev/go-ahorra/models"
)

const (
	columnID        = "id"
	columnCreatedAt = "fecha_creacion"

	valuesColumnKey   = "clave"
	valuesColumnValue = "valor"

	usersColumnEmail    = "email"
	usersColumnPassword = "password"
)

// entity is implemented by every model stored in a table.
type entity[T any] interface {
	GetID() int64
	WithIdentity(id int64, createdAt time.Time) T
}

type rowScanner interface {
	Scan(dest ...any) error
}

// sqlSchema describes how a model maps onto its table. The id and
// fecha_creacion columns are implicit.
type sqlSchema[T any] struct {
	table string

	insertColumns []string
	insertValues  func(T) []any

	updateColumns []string
	updateValues  func(T) []any

	// scan reads id, insertColumns and fecha_creacion in that order.
	scan func(rowScanner) (T, error)

	// conflictErr, when set, replaces unique constraint violations.
	conflictErr error
}

func (s sqlSchema[T]) selectColumns() []string {
	cols := make([]string, 0, len(s.insertColumns)+2)
	cols = append(cols, columnID)
	cols = append(cols, s.insertColumns...)
	return append(cols, columnCreatedAt)
}

var recordSchema = sqlSchema[models.Record]{
	table:         models.TableRecords,
	insertColumns: []string{"nombre", "monto", "categoria", "tipo"},
	insertValues: func(r models.Record) []any {
		return []any{r.Name, r.Amount, r.Category, string(r.Kind)}
	},
	updateColumns: []string{"nombre", "monto", "categoria", "tipo"},
	updateValues: func(r models.Record) []any {
		return []any{r.Name, r.Amount, r.Category, string(r.Kind)}
	},
	scan: func(sc rowScanner) (models.Record, error) {
		var r models.Record
		err := sc.Scan(&r.ID, &r.Name, &r.Amount, &r.Category, &r.Kind, &r.CreatedAt)
		r.CreatedAt = r.CreatedAt.UTC()
		return r, err
	},
}

var budgetSchema = sqlSchema[models.Budget]{
	table:         models.TableBudgets,
	insertColumns: []string{"categoria", "monto"},
	insertValues: func(b models.Budget) []any {
		return []any{b.Category, b.Amount}
	},
	updateColumns: []string{"categoria", "monto"},
	updateValues: func(b models.Budget) []any {
		return []any{b.Category, b.Amount}
	},
	scan: func(sc rowScanner) (models.Budget, error) {
		var b models.Budget
		err := sc.Scan(&b.ID, &b.Category, &b.Amount, &b.CreatedAt)
		b.CreatedAt = b.CreatedAt.UTC()
		return b, err
	},
}

var userSchema = sqlSchema[models.User]{
	table:         models.TableUsers,
	insertColumns: []string{"nombre", usersColumnEmail, "phone", usersColumnPassword},
	insertValues: func(u models.User) []any {
		return []any{u.Name, u.Email, u.Phone, u.PasswordHash}
	},
	// the password hash only changes through UpdateUserPassword
	updateColumns: []string{"nombre", usersColumnEmail, "phone"},
	updateValues: func(u models.User) []any {
		return []any{u.Name, u.Email, u.Phone}
	},
	scan: func(sc rowScanner) (models.User, error) {
		var u models.User
		err := sc.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt)
		u.CreatedAt = u.CreatedAt.UTC()
		return u, err
	},
	conflictErr: ErrEmailAlreadyExists,
}
