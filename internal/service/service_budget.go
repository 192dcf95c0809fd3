// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/validators"
	"github.com/MKhiriev/go-ahorra/models"
)

// budgetService is the concrete implementation of BudgetService.
type budgetService struct {
	budgets   store.BudgetRepository
	validator validators.Validator
	changes   *notify.Hub[models.Change]
	logger    *logger.Logger
}

// NewBudgetService constructs a BudgetService over storage.
func NewBudgetService(storage store.Storage, log *logger.Logger) BudgetService {
	if log == nil {
		log = logger.Nop()
	}
	return &budgetService{
		budgets:   storage.Budgets(),
		validator: validators.NewEntityValidator(),
		changes:   notify.NewHub[models.Change](models.TableBudgets, log),
		logger:    log,
	}
}

// Changes returns the hub that receives a [models.Change] for the budgets
// table after every successful write.
func (s *budgetService) Changes() *notify.Hub[models.Change] {
	return s.changes
}

// List returns every stored budget.
//
// Error handling:
//   - Any storage failure is logged and wrapped in [ErrBudgetsNotLoaded].
func (s *budgetService) List(ctx context.Context) ([]models.Budget, error) {
	budgets, err := s.budgets.GetAll(ctx)
	if err != nil {
		s.log(ctx).Err(err).Str("func", "budgetService.List").Msg("error loading budgets")
		return nil, fmt.Errorf("%w: %w", ErrBudgetsNotLoaded, err)
	}
	return budgets, nil
}

// Get returns the budget with the given id.
//
// Error handling:
//   - [store.ErrNotFound] → wrapped in [ErrBudgetNotFound].
//   - Any other storage failure is logged and wrapped in [ErrBudgetsNotLoaded].
func (s *budgetService) Get(ctx context.Context, id int64) (models.Budget, error) {
	budget, err := s.budgets.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetNotFound, err)
	}
	if err != nil {
		s.log(ctx).Err(err).Str("func", "budgetService.Get").Int64("id", id).Msg("error loading budget")
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetsNotLoaded, err)
	}
	return budget, nil
}

// Create validates input and stores it as the budget of its category,
// publishing a [models.ActionCreated] change.
//
// It checks for an existing budget of the same category before the insert.
// The check and the insert are separate calls, so two concurrent creates for
// one category may both succeed.
//
// Error handling:
//   - Validation failures are returned unchanged.
//   - A category that already has a budget → [ErrBudgetAlreadyExists].
//   - Storage failures are logged and wrapped in [ErrBudgetNotSaved].
func (s *budgetService) Create(ctx context.Context, input models.BudgetInput) (models.Budget, error) {
	log := s.log(ctx).With().Str("func", "budgetService.Create").Logger()

	budget := models.NewBudget(input)
	if err := s.validator.Validate(ctx, budget); err != nil {
		return models.Budget{}, err
	}

	existing, err := s.budgets.GetAll(ctx)
	if err != nil {
		log.Err(err).Msg("error loading budgets")
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetNotSaved, err)
	}
	if _, ok := findBudget(existing, budget.Category); ok {
		return models.Budget{}, ErrBudgetAlreadyExists
	}

	saved, err := s.budgets.Add(ctx, budget)
	if err != nil {
		log.Err(err).Any("budget", budget).Msg("error saving budget")
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetNotSaved, err)
	}

	s.publish(ctx, models.ActionCreated, saved.ID)
	return saved, nil
}

// Update replaces category and amount of the budget with id and publishes a
// [models.ActionUpdated] change. The returned budget keeps its original
// creation time.
//
// Error handling:
//   - Validation failures are returned unchanged.
//   - Moving the budget onto a category that already has another budget →
//     [ErrBudgetAlreadyExists].
//   - [store.ErrNotFound] → wrapped in [ErrBudgetNotFound].
//   - Other storage failures are logged and wrapped in [ErrBudgetNotUpdated].
func (s *budgetService) Update(ctx context.Context, id int64, input models.BudgetInput) (models.Budget, error) {
	log := s.log(ctx).With().Str("func", "budgetService.Update").Int64("id", id).Logger()

	budget := models.NewBudget(input)
	if err := s.validator.Validate(ctx, budget); err != nil {
		return models.Budget{}, err
	}
	budget.ID = id

	existing, err := s.budgets.GetAll(ctx)
	if err != nil {
		log.Err(err).Msg("error loading budgets")
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetNotUpdated, err)
	}
	if other, ok := findBudget(existing, budget.Category); ok && other.ID != id {
		return models.Budget{}, ErrBudgetAlreadyExists
	}

	err = s.budgets.Update(ctx, budget)
	if errors.Is(err, store.ErrNotFound) {
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetNotFound, err)
	}
	if err != nil {
		log.Err(err).Msg("error updating budget")
		return models.Budget{}, fmt.Errorf("%w: %w", ErrBudgetNotUpdated, err)
	}

	for _, b := range existing {
		if b.ID == id {
			budget.CreatedAt = b.CreatedAt
			break
		}
	}

	s.publish(ctx, models.ActionUpdated, id)
	return budget, nil
}

// Delete removes the budget with id. Deleting a missing budget is not an
// error.
func (s *budgetService) Delete(ctx context.Context, id int64) error {
	if err := s.budgets.Delete(ctx, id); err != nil {
		s.log(ctx).Err(err).Str("func", "budgetService.Delete").Int64("id", id).Msg("error deleting budget")
		return fmt.Errorf("%w: %w", ErrBudgetNotDeleted, err)
	}
	s.publish(ctx, models.ActionDeleted, id)
	return nil
}

// DeleteAll removes every budget and publishes one [models.ActionDeletedAll]
// change.
func (s *budgetService) DeleteAll(ctx context.Context) error {
	if err := s.budgets.DeleteAll(ctx); err != nil {
		s.log(ctx).Err(err).Str("func", "budgetService.DeleteAll").Msg("error deleting budgets")
		return fmt.Errorf("%w: %w", ErrBudgetsNotDeleted, err)
	}
	s.publish(ctx, models.ActionDeletedAll, 0)
	return nil
}

func (s *budgetService) publish(ctx context.Context, action models.Action, id int64) {
	_ = s.changes.Publish(ctx, models.Change{Table: models.TableBudgets, Action: action, ID: id})
}

func (s *budgetService) log(ctx context.Context) *logger.Logger {
	return logger.Ctx(ctx, s.logger)
}
