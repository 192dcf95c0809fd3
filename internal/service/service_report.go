// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/models"
	"github.com/shopspring/decimal"
)

// Notification ids. Budget entries append the budget id.
const (
	NotificationIDNegativeBalance = "saldo-negativo"
	NotificationIDBudgetExceeded  = "presupuesto-excedido"
	NotificationIDBudgetNearLimit = "presupuesto-alerta"
	NotificationIDBudgetProgress  = "presupuesto-info"
	NotificationIDAllGood         = "bienvenida"
)

type reportService struct {
	records store.RecordRepository
	budgets store.BudgetRepository
	clock   Clock
	logger  *logger.Logger
}

// NewReportService constructs a ReportService over storage.
func NewReportService(storage store.Storage, log *logger.Logger, opts ...Option) ReportService {
	o := buildOptions(opts)
	if log == nil {
		log = logger.Nop()
	}
	return &reportService{
		records: storage.Records(),
		budgets: storage.Budgets(),
		clock:   o.clock,
		logger:  log,
	}
}

// Balance sums every stored record regardless of date: income minus expense.
//
// Error handling:
//   - Any storage failure is logged and wrapped in [ErrReportNotBuilt].
func (s *reportService) Balance(ctx context.Context) (models.Balance, error) {
	records, err := s.records.GetAll(ctx)
	if err != nil {
		logger.Ctx(ctx, s.logger).Err(err).Str("func", "reportService.Balance").Msg("error loading records")
		return models.Balance{}, fmt.Errorf("%w: %w", ErrReportNotBuilt, err)
	}
	return balanceOf(records), nil
}

// Monthly buckets the records created in year, in UTC, into twelve
// [models.MonthlyTotals], January first. Months without records are present
// with zero totals. Savings is income minus expense and may be negative.
func (s *reportService) Monthly(ctx context.Context, year int) ([]models.MonthlyTotals, error) {
	records, err := s.records.GetAll(ctx)
	if err != nil {
		logger.Ctx(ctx, s.logger).Err(err).Str("func", "reportService.Monthly").Int("year", year).Msg("error loading records")
		return nil, fmt.Errorf("%w: %w", ErrReportNotBuilt, err)
	}

	months := make([]models.MonthlyTotals, 12)
	for i := range months {
		months[i] = models.MonthlyTotals{
			Month:   time.Month(i + 1),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Savings: decimal.Zero,
		}
	}

	for _, r := range records {
		created := r.CreatedAt.UTC()
		if created.Year() != year {
			continue
		}
		bucket := &months[created.Month()-1]
		switch r.Kind {
		case models.Income:
			bucket.Income = bucket.Income.Add(r.Amount)
		case models.Expense:
			bucket.Expense = bucket.Expense.Add(r.Amount)
		}
	}

	for i := range months {
		months[i].Savings = months[i].Income.Sub(months[i].Expense)
	}
	return months, nil
}

// Notifications builds the dashboard entries in display order: a negative
// balance warning first, then one entry per budget at in-progress level or
// above, in budget order. When nothing needs attention the single "all good"
// entry is returned, so the result is never empty.
//
// Notification ids are stable for as long as the condition holds, which lets
// callers tell a new condition from a persisting one.
//
// Error handling:
//   - Failure to load records or budgets is logged and wrapped in
//     [ErrReportNotBuilt].
func (s *reportService) Notifications(ctx context.Context) ([]models.Notification, error) {
	log := logger.Ctx(ctx, s.logger).With().Str("func", "reportService.Notifications").Logger()

	records, err := s.records.GetAll(ctx)
	if err != nil {
		log.Err(err).Msg("error loading records")
		return nil, fmt.Errorf("%w: %w", ErrReportNotBuilt, err)
	}
	budgets, err := s.budgets.GetAll(ctx)
	if err != nil {
		log.Err(err).Msg("error loading budgets")
		return nil, fmt.Errorf("%w: %w", ErrReportNotBuilt, err)
	}

	now := s.clock()
	var notifications []models.Notification

	if balance := balanceOf(records); balance.Balance.IsNegative() {
		notifications = append(notifications, models.Notification{
			ID:      NotificationIDNegativeBalance,
			Kind:    models.NotificationNegativeBalance,
			Title:   "Negative balance",
			Message: fmt.Sprintf("Your balance is $%s. Consider cutting expenses.", balance.Balance.StringFixed(2)),
			At:      now,
		})
	}

	for _, b := range budgets {
		status := evaluateBudget(b, monthlySpend(records, b.Category, now))
		if n, ok := budgetNotification(status, now); ok {
			notifications = append(notifications, n)
		}
	}

	if len(notifications) == 0 {
		notifications = append(notifications, models.Notification{
			ID:      NotificationIDAllGood,
			Kind:    models.NotificationAllGood,
			Title:   "All good",
			Message: "You have no pending notifications. Keep it up!",
			At:      now,
		})
	}
	return notifications, nil
}

// budgetNotification renders a status at in-progress level or above.
func budgetNotification(status models.BudgetStatus, now time.Time) (models.Notification, bool) {
	percent := status.Percent.StringFixed(0)
	spent := status.Spent.StringFixed(2)
	limit := status.Limit.StringFixed(2)

	var n models.Notification
	switch status.Level {
	case models.LevelExceeded:
		n = models.Notification{
			ID:      fmt.Sprintf("%s-%d", NotificationIDBudgetExceeded, status.BudgetID),
			Kind:    models.NotificationBudgetExceeded,
			Title:   "Budget exceeded",
			Message: fmt.Sprintf("You have spent $%s on %s, over your limit of $%s.", spent, status.Category, limit),
		}
	case models.LevelNearLimit:
		n = models.Notification{
			ID:      fmt.Sprintf("%s-%d", NotificationIDBudgetNearLimit, status.BudgetID),
			Kind:    models.NotificationBudgetNearLimit,
			Title:   "Close to the limit",
			Message: fmt.Sprintf("You are at %s%% of your %s budget: $%s of $%s.", percent, status.Category, spent, limit),
		}
	case models.LevelInProgress:
		n = models.Notification{
			ID:      fmt.Sprintf("%s-%d", NotificationIDBudgetProgress, status.BudgetID),
			Kind:    models.NotificationBudgetProgress,
			Title:   "Budget in progress",
			Message: fmt.Sprintf("You have used %s%% of your %s budget.", percent, status.Category),
		}
	default:
		return models.Notification{}, false
	}
	n.At = now
	return n, true
}

// balanceOf totals records by kind.
func balanceOf(records []models.Record) models.Balance {
	income, expense := decimal.Zero, decimal.Zero
	for _, r := range records {
		switch r.Kind {
		case models.Income:
			income = income.Add(r.Amount)
		case models.Expense:
			expense = expense.Add(r.Amount)
		}
	}
	return models.Balance{Income: income, Expense: expense, Balance: income.Sub(expense)}
}
