// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-ahorra/models"
)

// Row shapes serialized into the Redis JSON lists. Keys mirror the
// relational column names.

type recordRow struct {
	ID        int64           `json:"id"`
	Name      string          `json:"nombre"`
	Amount    decimal.Decimal `json:"monto"`
	Category  string          `json:"categoria"`
	Kind      string          `json:"tipo"`
	CreatedAt time.Time       `json:"fecha_creacion"`
}

type budgetRow struct {
	ID        int64           `json:"id"`
	Category  string          `json:"categoria"`
	Amount    decimal.Decimal `json:"monto"`
	CreatedAt time.Time       `json:"fecha_creacion"`
}

type userRow struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"fecha_creacion"`
}

// kvSchema describes how a model maps onto its stored row.
type kvSchema[T any, R any] struct {
	table   string
	toRow   func(T) R
	fromRow func(R) T
	rowID   func(R) int64
	// merge applies the mutable fields of item to stored.
	merge func(stored R, item T) R
	// conflict, when set, rejects item against the current rows.
	// skipID excludes the row being updated.
	conflict func(rows []R, item T, skipID int64) error
}

var recordKVSchema = kvSchema[models.Record, recordRow]{
	table: models.TableRecords,
	toRow: func(r models.Record) recordRow {
		return recordRow{ID: r.ID, Name: r.Name, Amount: r.Amount, Category: r.Category, Kind: string(r.Kind), CreatedAt: r.CreatedAt}
	},
	fromRow: func(r recordRow) models.Record {
		return models.Record{ID: r.ID, Name: r.Name, Amount: r.Amount, Category: r.Category, Kind: models.RecordKind(r.Kind), CreatedAt: r.CreatedAt.UTC()}
	},
	rowID: func(r recordRow) int64 { return r.ID },
	merge: func(stored recordRow, item models.Record) recordRow {
		stored.Name = item.Name
		stored.Amount = item.Amount
		stored.Category = item.Category
		stored.Kind = string(item.Kind)
		return stored
	},
}

var budgetKVSchema = kvSchema[models.Budget, budgetRow]{
	table: models.TableBudgets,
	toRow: func(b models.Budget) budgetRow {
		return budgetRow{ID: b.ID, Category: b.Category, Amount: b.Amount, CreatedAt: b.CreatedAt}
	},
	fromRow: func(b budgetRow) models.Budget {
		return models.Budget{ID: b.ID, Category: b.Category, Amount: b.Amount, CreatedAt: b.CreatedAt.UTC()}
	},
	rowID: func(b budgetRow) int64 { return b.ID },
	merge: func(stored budgetRow, item models.Budget) budgetRow {
		stored.Category = item.Category
		stored.Amount = item.Amount
		return stored
	},
}

var userKVSchema = kvSchema[models.User, userRow]{
	table: models.TableUsers,
	toRow: func(u models.User) userRow {
		return userRow{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
	},
	fromRow: func(u userRow) models.User {
		return models.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt.UTC()}
	},
	rowID: func(u userRow) int64 { return u.ID },
	// the password hash only changes through UpdateUserPassword
	merge: func(stored userRow, item models.User) userRow {
		stored.Name = item.Name
		stored.Email = item.Email
		stored.Phone = item.Phone
		return stored
	},
	conflict: func(rows []userRow, item models.User, skipID int64) error {
		for _, row := range rows {
			if row.ID != skipID && row.Email == item.Email {
				return ErrEmailAlreadyExists
			}
		}
		return nil
	},
}
