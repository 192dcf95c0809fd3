// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetLevel grades how much of a budget has been spent this month.
type BudgetLevel string

const (
	// LevelOK means less than 75% of the limit is spent.
	LevelOK BudgetLevel = "ok"
	// LevelInProgress means at least 75% of the limit is spent.
	LevelInProgress BudgetLevel = "in_progress"
	// LevelNearLimit means at least 90% of the limit is spent.
	LevelNearLimit BudgetLevel = "near_limit"
	// LevelExceeded means spending is strictly above the limit.
	LevelExceeded BudgetLevel = "exceeded"
	// LevelNoBudget means the category has no budget defined.
	LevelNoBudget BudgetLevel = "no_budget"
)

// BudgetStatus is the month-to-date spend of a category against its budget.
type BudgetStatus struct {
	Category string          `json:"category"`
	BudgetID int64           `json:"budget_id,omitempty"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"`
	// Percent is Spent/Limit*100 rounded to two decimals.
	Percent decimal.Decimal `json:"percent"`
	Level   BudgetLevel     `json:"level"`
}

// Alerting reports whether the status should be surfaced to the user
// right after a write.
func (s BudgetStatus) Alerting() bool {
	return s.Level == LevelExceeded || s.Level == LevelNearLimit
}

// BudgetAlert is published when a write pushes a category to near-limit or beyond.
type BudgetAlert struct {
	Status   BudgetStatus `json:"status"`
	RecordID int64        `json:"record_id"`
	At       time.Time    `json:"at"`
}

// Balance sums every record ever stored.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthlyTotals is one month bucket of a yearly report.
type MonthlyTotals struct {
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	// Savings is Income-Expense and may be negative.
	Savings decimal.Decimal `json:"savings"`
}

// NotificationKind classifies dashboard notifications.
type NotificationKind string

const (
	NotificationNegativeBalance NotificationKind = "negative_balance"
	NotificationBudgetExceeded  NotificationKind = "budget_exceeded"
	NotificationBudgetNearLimit NotificationKind = "budget_near_limit"
	NotificationBudgetProgress  NotificationKind = "budget_in_progress"
	NotificationAllGood         NotificationKind = "all_good"
)

// Notification is one dashboard entry derived from balance and budgets.
type Notification struct {
	ID      string           `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}
