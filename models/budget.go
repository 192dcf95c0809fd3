// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending ceiling for one category.
type Budget struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// GetID returns the storage identifier.
func (b Budget) GetID() int64 {
	return b.ID
}

// WithIdentity returns a copy of b carrying the storage-assigned identity.
func (b Budget) WithIdentity(id int64, createdAt time.Time) Budget {
	b.ID = id
	b.CreatedAt = createdAt
	return b
}

// BudgetInput carries the caller-supplied fields of a budget.
type BudgetInput struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewBudget builds a Budget from input, trimming the category.
func NewBudget(in BudgetInput) Budget {
	return Budget{
		Category: strings.TrimSpace(in.Category),
		Amount:   in.Amount,
	}
}
