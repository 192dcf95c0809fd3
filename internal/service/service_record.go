// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/validators"
	"github.com/MKhiriev/go-ahorra/models"
)

// recordService is the concrete implementation of RecordService.
type recordService struct {
	records store.RecordRepository
	budgets store.BudgetRepository

	validator validators.Validator
	clock     Clock

	changes *notify.Hub[models.Change]
	alerts  *notify.Hub[models.BudgetAlert]
	logger  *logger.Logger
}

// NewRecordService constructs a RecordService over storage.
func NewRecordService(storage store.Storage, log *logger.Logger, opts ...Option) RecordService {
	o := buildOptions(opts)
	if log == nil {
		log = logger.Nop()
	}
	return &recordService{
		records:   storage.Records(),
		budgets:   storage.Budgets(),
		validator: validators.NewEntityValidator(),
		clock:     o.clock,
		changes:   notify.NewHub[models.Change](models.TableRecords, log),
		alerts:    notify.NewHub[models.BudgetAlert]("budget-alerts", log),
		logger:    log,
	}
}

// Changes returns the hub that receives a [models.Change] for the records
// table after every successful write.
func (s *recordService) Changes() *notify.Hub[models.Change] {
	return s.changes
}

// Alerts returns the hub that receives a [models.BudgetAlert] whenever a
// written expense leaves its category near or over the monthly limit.
func (s *recordService) Alerts() *notify.Hub[models.BudgetAlert] {
	return s.alerts
}

// List returns every stored record in storage order.
//
// Error handling:
//   - Any storage failure is logged and wrapped in [ErrRecordsNotLoaded].
func (s *recordService) List(ctx context.Context) ([]models.Record, error) {
	records, err := s.records.GetAll(ctx)
	if err != nil {
		s.log(ctx).Err(err).Str("func", "recordService.List").Msg("error loading records")
		return nil, fmt.Errorf("%w: %w", ErrRecordsNotLoaded, err)
	}
	return records, nil
}

// Get returns the record with the given id.
//
// Error handling:
//   - [store.ErrNotFound] → wrapped in [ErrRecordNotFound].
//   - Any other storage failure is logged and wrapped in [ErrRecordsNotLoaded].
func (s *recordService) Get(ctx context.Context, id int64) (models.Record, error) {
	record, err := s.records.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Record{}, fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	}
	if err != nil {
		s.log(ctx).Err(err).Str("func", "recordService.Get").Int64("id", id).Msg("error loading record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrRecordsNotLoaded, err)
	}
	return record, nil
}

// Create validates input, stores it as a new record and publishes a
// [models.ActionCreated] change.
//
// For expenses the month-to-date [models.BudgetStatus] of the record's category
// is returned as well, and an alert is published on [recordService.Alerts] when
// the category ends up near or over its limit. Income yields a zero status.
//
// Parameters:
//   - ctx:   request-scoped context; its logger, when attached, is used.
//   - input: user-entered fields. Name and category are trimmed and an
//     empty kind defaults to [models.Expense]; the id and creation time
//     are assigned by storage.
//
// Error handling:
//   - Validation failures are returned unchanged and nothing is stored.
//   - Storage failures are logged and wrapped in [ErrRecordNotSaved].
//   - A failed budget evaluation does not fail the call: the record is
//     already saved, so the status is zero and a warning is logged.
func (s *recordService) Create(ctx context.Context, input models.RecordInput) (models.Record, models.BudgetStatus, error) {
	record := models.NewRecord(input)
	if err := s.validator.Validate(ctx, record); err != nil {
		return models.Record{}, models.BudgetStatus{}, err
	}

	saved, err := s.records.Add(ctx, record)
	if err != nil {
		s.log(ctx).Err(err).Str("func", "recordService.Create").Any("record", record).Msg("error saving record")
		return models.Record{}, models.BudgetStatus{}, fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
	}

	s.publish(ctx, models.ActionCreated, saved.ID)
	return saved, s.afterWrite(ctx, saved), nil
}

// Update validates input and replaces the record with id, keeping its
// creation time. A [models.ActionUpdated] change is published and, for
// expenses, the status of the new category is evaluated as in Create.
//
// Error handling:
//   - Validation failures are returned unchanged.
//   - [store.ErrNotFound] → wrapped in [ErrRecordNotFound].
//   - Other storage failures are logged and wrapped in [ErrRecordNotUpdated].
//   - If the updated row cannot be reloaded, the written values are returned
//     and a warning is logged.
func (s *recordService) Update(ctx context.Context, id int64, input models.RecordInput) (models.Record, models.BudgetStatus, error) {
	log := s.log(ctx).With().Str("func", "recordService.Update").Int64("id", id).Logger()

	record := models.NewRecord(input)
	if err := s.validator.Validate(ctx, record); err != nil {
		return models.Record{}, models.BudgetStatus{}, err
	}
	record.ID = id

	err := s.records.Update(ctx, record)
	if errors.Is(err, store.ErrNotFound) {
		return models.Record{}, models.BudgetStatus{}, fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	}
	if err != nil {
		log.Err(err).Msg("error updating record")
		return models.Record{}, models.BudgetStatus{}, fmt.Errorf("%w: %w", ErrRecordNotUpdated, err)
	}
	s.publish(ctx, models.ActionUpdated, id)

	updated, err := s.records.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Msg("error reloading updated record")
		updated = record
	}
	return updated, s.afterWrite(ctx, updated), nil
}

// Delete removes the record with id and publishes a [models.ActionDeleted]
// change.
//
// Error handling:
//   - Any storage failure is logged and wrapped in [ErrRecordNotDeleted].
func (s *recordService) Delete(ctx context.Context, id int64) error {
	if err := s.records.Delete(ctx, id); err != nil {
		s.log(ctx).Err(err).Str("func", "recordService.Delete").Int64("id", id).Msg("error deleting record")
		return fmt.Errorf("%w: %w", ErrRecordNotDeleted, err)
	}
	s.publish(ctx, models.ActionDeleted, id)
	return nil
}

// DeleteAll removes every record and publishes a single
// [models.ActionDeletedAll] change with a zero id.
func (s *recordService) DeleteAll(ctx context.Context) error {
	if err := s.records.DeleteAll(ctx); err != nil {
		s.log(ctx).Err(err).Str("func", "recordService.DeleteAll").Msg("error deleting records")
		return fmt.Errorf("%w: %w", ErrRecordsNotDeleted, err)
	}
	s.publish(ctx, models.ActionDeletedAll, 0)
	return nil
}

// CheckBudget computes the current month's spend for category against its
// budget. Category matching is exact after trimming surrounding whitespace.
// A category without a budget yields [models.LevelNoBudget] with the spend
// still filled in.
//
// Error handling:
//   - Failure to load budgets → wrapped in [ErrBudgetsNotLoaded].
//   - Failure to load records → wrapped in [ErrRecordsNotLoaded].
func (s *recordService) CheckBudget(ctx context.Context, category string) (models.BudgetStatus, error) {
	log := s.log(ctx).With().Str("func", "recordService.CheckBudget").Logger()
	category = strings.TrimSpace(category)

	budgets, err := s.budgets.GetAll(ctx)
	if err != nil {
		log.Err(err).Msg("error loading budgets")
		return models.BudgetStatus{}, fmt.Errorf("%w: %w", ErrBudgetsNotLoaded, err)
	}
	records, err := s.records.GetAll(ctx)
	if err != nil {
		log.Err(err).Msg("error loading records")
		return models.BudgetStatus{}, fmt.Errorf("%w: %w", ErrRecordsNotLoaded, err)
	}

	spent := monthlySpend(records, category, s.clock())
	budget, ok := findBudget(budgets, category)
	if !ok {
		return noBudgetStatus(category, spent), nil
	}
	return evaluateBudget(budget, spent), nil
}

// afterWrite evaluates the budget of an expense's category and publishes an
// alert at near-limit or above. The write already succeeded, so a failed
// evaluation is logged and yields a zero status.
func (s *recordService) afterWrite(ctx context.Context, record models.Record) models.BudgetStatus {
	if record.Kind != models.Expense {
		return models.BudgetStatus{}
	}

	status, err := s.CheckBudget(ctx, record.Category)
	if err != nil {
		s.log(ctx).Warn().Err(err).Str("func", "recordService.afterWrite").Int64("id", record.ID).Msg("budget status not computed")
		return models.BudgetStatus{}
	}

	if status.Alerting() {
		alert := models.BudgetAlert{Status: status, RecordID: record.ID, At: s.clock()}
		_ = s.alerts.Publish(ctx, alert)
	}
	return status
}

// publish notifies change subscribers. Listener errors are already logged by
// the hub and never fail the write.
func (s *recordService) publish(ctx context.Context, action models.Action, id int64) {
	_ = s.changes.Publish(ctx, models.Change{Table: models.TableRecords, Action: action, ID: id})
}

func (s *recordService) log(ctx context.Context) *logger.Logger {
	return logger.Ctx(ctx, s.logger)
}
