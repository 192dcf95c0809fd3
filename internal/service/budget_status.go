// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-ahorra/models"
	"github.com/shopspring/decimal"
)

// Thresholds in percent of the limit.
var (
	hundred           = decimal.NewFromInt(100)
	nearLimitPercent  = decimal.NewFromInt(90)
	inProgressPercent = decimal.NewFromInt(75)
)

// Clock supplies "now" for month boundaries and alert timestamps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// sameMonth reports whether t falls in now's calendar month, compared in UTC.
func sameMonth(t, now time.Time) bool {
	t, now = t.UTC(), now.UTC()
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// monthlySpend sums the expenses of category created in now's month.
func monthlySpend(records []models.Record, category string, now time.Time) decimal.Decimal {
	spent := decimal.Zero
	for _, r := range records {
		if r.Kind == models.Expense && r.Category == category && sameMonth(r.CreatedAt, now) {
			spent = spent.Add(r.Amount)
		}
	}
	return spent
}

// findBudget returns the budget of category, if any.
func findBudget(budgets []models.Budget, category string) (models.Budget, bool) {
	for _, b := range budgets {
		if b.Category == category {
			return b, true
		}
	}
	return models.Budget{}, false
}

// evaluateBudget grades spent against b. Exceeded is strictly above the
// limit; the percentage levels compare the exact ratio, not the rounded one.
func evaluateBudget(b models.Budget, spent decimal.Decimal) models.BudgetStatus {
	status := models.BudgetStatus{
		Category: b.Category,
		BudgetID: b.ID,
		Limit:    b.Amount,
		Spent:    spent,
		Percent:  decimal.Zero,
		Level:    models.LevelOK,
	}
	if !b.Amount.IsPositive() {
		if spent.GreaterThan(b.Amount) {
			status.Level = models.LevelExceeded
		}
		return status
	}

	status.Percent = spent.Mul(hundred).Div(b.Amount).Round(2)
	scaled := spent.Mul(hundred)

	switch {
	case spent.GreaterThan(b.Amount):
		status.Level = models.LevelExceeded
	case scaled.GreaterThanOrEqual(b.Amount.Mul(nearLimitPercent)):
		status.Level = models.LevelNearLimit
	case scaled.GreaterThanOrEqual(b.Amount.Mul(inProgressPercent)):
		status.Level = models.LevelInProgress
	}
	return status
}

// noBudgetStatus is returned for a category without a budget.
func noBudgetStatus(category string, spent decimal.Decimal) models.BudgetStatus {
	return models.BudgetStatus{
		Category: category,
		Limit:    decimal.Zero,
		Spent:    spent,
		Percent:  decimal.Zero,
		Level:    models.LevelNoBudget,
	}
}
