// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind tags a ledger entry as income or expense.
type RecordKind string

const (
	// Income marks money coming in.
	Income RecordKind = "ingreso"
	// Expense marks money going out. Only expenses count against budgets.
	Expense RecordKind = "gasto"
)

// Record is a single ledger entry.
type Record struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Kind      RecordKind      `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// GetID returns the storage identifier.
func (r Record) GetID() int64 {
	return r.ID
}

// WithIdentity returns a copy of r carrying the storage-assigned identity.
func (r Record) WithIdentity(id int64, createdAt time.Time) Record {
	r.ID = id
	r.CreatedAt = createdAt
	return r
}

// RecordInput carries the caller-supplied fields of a record.
type RecordInput struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Kind     RecordKind      `json:"kind"`
}

// NewRecord builds a Record from input, trimming text fields.
// An empty kind defaults to Expense.
func NewRecord(in RecordInput) Record {
	kind := in.Kind
	if kind == "" {
		kind = Expense
	}
	return Record{
		Name:     strings.TrimSpace(in.Name),
		Amount:   in.Amount,
		Category: strings.TrimSpace(in.Category),
		Kind:     kind,
	}
}
