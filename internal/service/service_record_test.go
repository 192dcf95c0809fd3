// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ahorra/internal/app"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/mock"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/validators"
	"github.com/MKhiriev/go-ahorra/models"
)

// ── CRUD against real backends ──────────────────────────────────────────────

func TestRecordService_Create_ListContainsNewRecord(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		rs := svc.RecordService

		created, _, err := rs.Create(ctx, models.RecordInput{
			Name:     "  Groceries  ",
			Amount:   dec("42.50"),
			Category: " Food ",
			Kind:     models.Expense,
		})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.True(t, testNow.Equal(created.CreatedAt))

		list, err := rs.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
		assert.Equal(t, "Groceries", list[0].Name)
		assert.Equal(t, "Food", list[0].Category)
		assert.Equal(t, models.Expense, list[0].Kind)
		requireDecimal(t, "42.50", list[0].Amount)
	})
}

func TestRecordService_Create_UniqueIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		seen := map[int64]bool{}
		for i := 0; i < 5; i++ {
			r, _, err := svc.RecordService.Create(ctx, income("salary", "100", "Work"))
			require.NoError(t, err)
			assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
			seen[r.ID] = true
		}
	})
}

func TestRecordService_Create_DefaultsToExpense(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		r, _, err := svc.RecordService.Create(context.Background(), models.RecordInput{
			Name: "Taxi", Amount: dec("12"), Category: "Transport",
		})
		require.NoError(t, err)
		assert.Equal(t, models.Expense, r.Kind)
	})
}

func TestRecordService_Create_InvalidInputPersistsNothing(t *testing.T) {
	tests := []struct {
		name    string
		input   models.RecordInput
		wantErr error
	}{
		{name: "empty name", input: expense("   ", "10", "Food"), wantErr: validators.ErrEmptyName},
		{name: "name too long", input: expense(strings.Repeat("x", validators.MaxNameLength+1), "10", "Food"), wantErr: validators.ErrNameTooLong},
		{name: "negative amount", input: expense("Lunch", "-1", "Food"), wantErr: validators.ErrInvalidAmount},
		{name: "category too long", input: expense("Lunch", "10", strings.Repeat("c", validators.MaxCategoryLength+1)), wantErr: validators.ErrCategoryTooLong},
		{name: "unknown kind", input: models.RecordInput{Name: "Lunch", Amount: dec("10"), Category: "Food", Kind: "loan"}, wantErr: validators.ErrInvalidKind},
	}

	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		changes, _ := collect(svc.RecordService.Changes())

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := svc.RecordService.Create(ctx, tt.input)
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, validators.ErrValidation)
			})
		}

		list, err := svc.RecordService.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Empty(t, *changes)
	})
}

func TestRecordService_Get_RoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		created, _, err := svc.RecordService.Create(ctx, income("Salary", "2500.75", "Work"))
		require.NoError(t, err)

		got, err := svc.RecordService.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Name, got.Name)
		assert.Equal(t, created.Category, got.Category)
		assert.Equal(t, created.Kind, got.Kind)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
		requireDecimal(t, "2500.75", got.Amount)
	})
}

func TestRecordService_Get_Missing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		_, err := svc.RecordService.Get(context.Background(), 404)
		require.ErrorIs(t, err, ErrRecordNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Equal(t, app.MsgRecordNotFound, app.UserMessage(err))
	})
}

func TestRecordService_DeleteAll_Twice(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		for _, in := range []models.RecordInput{expense("a", "1", "A"), expense("b", "2", "B")} {
			_, _, err := svc.RecordService.Create(ctx, in)
			require.NoError(t, err)
		}

		for i := 0; i < 2; i++ {
			require.NoError(t, svc.RecordService.DeleteAll(ctx))
			list, err := svc.RecordService.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		}
	})
}

func TestRecordService_Update_OnlyNamedRow(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		first, _, err := svc.RecordService.Create(ctx, expense("Coffee", "3", "Food"))
		require.NoError(t, err)
		second, _, err := svc.RecordService.Create(ctx, expense("Bus", "2", "Transport"))
		require.NoError(t, err)

		updated, _, err := svc.RecordService.Update(ctx, first.ID, expense(" Espresso ", "4.20", "Food"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "Espresso", updated.Name)
		assert.True(t, first.CreatedAt.Equal(updated.CreatedAt))

		got, err := svc.RecordService.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bus", got.Name)
		requireDecimal(t, "2", got.Amount)

		got, err = svc.RecordService.Get(ctx, first.ID)
		require.NoError(t, err)
		requireDecimal(t, "4.20", got.Amount)
	})
}

func TestRecordService_Update_Missing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		_, _, err := svc.RecordService.Update(context.Background(), 99, expense("x", "1", "A"))
		require.ErrorIs(t, err, ErrRecordNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRecordService_Delete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		keep, _, err := svc.RecordService.Create(ctx, expense("keep", "1", "A"))
		require.NoError(t, err)
		drop, _, err := svc.RecordService.Create(ctx, expense("drop", "1", "A"))
		require.NoError(t, err)

		require.NoError(t, svc.RecordService.Delete(ctx, drop.ID))
		require.NoError(t, svc.RecordService.Delete(ctx, drop.ID), "deleting a missing row is not an error")

		list, err := svc.RecordService.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)
	})
}

// ── change notifications ─────────────────────────────────────────────────────

func TestRecordService_Changes_OneListenerOneCreate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		events, _ := collect(svc.RecordService.Changes())

		r, _, err := svc.RecordService.Create(context.Background(), expense("Tea", "2", "Food"))
		require.NoError(t, err)

		require.Len(t, *events, 1)
		assert.Equal(t, models.Change{Table: models.TableRecords, Action: models.ActionCreated, ID: r.ID}, (*events)[0])
	})
}

func TestRecordService_Changes_UnsubscribedGetsNothing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		hub := svc.RecordService.Changes()
		events, sub := collect(hub)
		require.True(t, hub.Unsubscribe(sub))

		_, _, err := svc.RecordService.Create(context.Background(), expense("Tea", "2", "Food"))
		require.NoError(t, err)
		assert.Empty(t, *events)
	})
}

func TestRecordService_Changes_EveryWrite(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		events, _ := collect(svc.RecordService.Changes())

		r, _, err := svc.RecordService.Create(ctx, expense("a", "1", "A"))
		require.NoError(t, err)
		_, _, err = svc.RecordService.Update(ctx, r.ID, expense("b", "1", "A"))
		require.NoError(t, err)
		require.NoError(t, svc.RecordService.Delete(ctx, r.ID))
		require.NoError(t, svc.RecordService.DeleteAll(ctx))

		var actions []models.Action
		for _, e := range *events {
			actions = append(actions, e.Action)
		}
		assert.Equal(t, []models.Action{
			models.ActionCreated, models.ActionUpdated, models.ActionDeleted, models.ActionDeletedAll,
		}, actions)
	})
}

// ── budget thresholds ────────────────────────────────────────────────────────

// withFoodBudget sets a 1000 budget on Food and spends spent on it.
func withFoodBudget(t *testing.T, svc *Services, spent string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.BudgetService.Create(ctx, models.BudgetInput{Category: "Food", Amount: dec("1000")})
	require.NoError(t, err)
	_, _, err = svc.RecordService.Create(ctx, expense("Market", spent, "Food"))
	require.NoError(t, err)
}

func TestRecordService_BudgetThresholds(t *testing.T) {
	tests := []struct {
		name      string
		spent     string
		add       string
		wantLevel models.BudgetLevel
		wantAlert bool
	}{
		{name: "over the limit", spent: "950", add: "100", wantLevel: models.LevelExceeded, wantAlert: true},
		{name: "near the limit", spent: "950", add: "10", wantLevel: models.LevelNearLimit, wantAlert: true},
		{name: "exactly the limit", spent: "950", add: "50", wantLevel: models.LevelNearLimit, wantAlert: true},
		{name: "in progress", spent: "700", add: "60", wantLevel: models.LevelInProgress, wantAlert: false},
		{name: "well under", spent: "500", add: "1", wantLevel: models.LevelOK, wantAlert: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
				withFoodBudget(t, svc, tt.spent)
				alerts, _ := collect(svc.RecordService.Alerts())

				r, status, err := svc.RecordService.Create(context.Background(), expense("Dinner", tt.add, "Food"))
				require.NoError(t, err)
				assert.Equal(t, tt.wantLevel, status.Level)

				if !tt.wantAlert {
					assert.Empty(t, *alerts)
					return
				}
				require.Len(t, *alerts, 1)
				alert := (*alerts)[0]
				assert.Equal(t, r.ID, alert.RecordID)
				assert.Equal(t, tt.wantLevel, alert.Status.Level)
				assert.Equal(t, "Food", alert.Status.Category)
				requireDecimal(t, "1000", alert.Status.Limit)
				assert.Equal(t, testNow, alert.At)
			})
		})
	}
}

func TestRecordService_BudgetExceeded_ReportsSpend(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		withFoodBudget(t, svc, "950")

		_, status, err := svc.RecordService.Create(context.Background(), expense("Dinner", "100", "Food"))
		require.NoError(t, err)
		requireDecimal(t, "1050", status.Spent)
		requireDecimal(t, "105", status.Percent)
	})
}

func TestRecordService_Income_NoAlert(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		withFoodBudget(t, svc, "950")
		alerts, _ := collect(svc.RecordService.Alerts())

		_, status, err := svc.RecordService.Create(context.Background(), income("Refund", "5000", "Food"))
		require.NoError(t, err)
		assert.Empty(t, status.Level)
		assert.Empty(t, *alerts)
	})
}

func TestRecordService_NoBudget_NoAlert(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		alerts, _ := collect(svc.RecordService.Alerts())

		_, status, err := svc.RecordService.Create(context.Background(), expense("Cinema", "1000000", "Fun"))
		require.NoError(t, err)
		assert.Equal(t, models.LevelNoBudget, status.Level)
		assert.Empty(t, *alerts)
	})
}

func TestRecordService_PreviousMonthIgnored(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, clock *testClock) {
		ctx := context.Background()
		_, err := svc.BudgetService.Create(ctx, models.BudgetInput{Category: "Food", Amount: dec("1000")})
		require.NoError(t, err)

		clock.Set(testNow.AddDate(0, -1, 0))
		_, _, err = svc.RecordService.Create(ctx, expense("Last month", "990", "Food"))
		require.NoError(t, err)
		clock.Set(time.Date(testNow.Year()-1, testNow.Month(), 10, 0, 0, 0, 0, time.UTC))
		_, _, err = svc.RecordService.Create(ctx, expense("Last year", "990", "Food"))
		require.NoError(t, err)

		clock.Set(testNow)
		alerts, _ := collect(svc.RecordService.Alerts())
		_, status, err := svc.RecordService.Create(ctx, expense("Today", "10", "Food"))
		require.NoError(t, err)
		assert.Equal(t, models.LevelOK, status.Level)
		requireDecimal(t, "10", status.Spent)
		assert.Empty(t, *alerts)
	})
}

func TestRecordService_Update_EvaluatesNewCategoryOnly(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		for _, in := range []models.BudgetInput{
			{Category: "Food", Amount: dec("100")},
			{Category: "Fun", Amount: dec("100")},
		} {
			_, err := svc.BudgetService.Create(ctx, in)
			require.NoError(t, err)
		}
		r, _, err := svc.RecordService.Create(ctx, expense("Pizza", "95", "Food"))
		require.NoError(t, err)

		alerts, _ := collect(svc.RecordService.Alerts())
		_, status, err := svc.RecordService.Update(ctx, r.ID, expense("Pizza", "95", "Fun"))
		require.NoError(t, err)

		assert.Equal(t, "Fun", status.Category)
		assert.Equal(t, models.LevelNearLimit, status.Level)
		require.Len(t, *alerts, 1)
		assert.Equal(t, "Fun", (*alerts)[0].Status.Category)
	})
}

func TestRecordService_CheckBudget(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *Services, _ *testClock) {
		ctx := context.Background()
		withFoodBudget(t, svc, "800")

		status, err := svc.RecordService.CheckBudget(ctx, " Food ")
		require.NoError(t, err)
		assert.Equal(t, models.LevelInProgress, status.Level)
		requireDecimal(t, "80", status.Percent)
		assert.Positive(t, status.BudgetID)

		status, err = svc.RecordService.CheckBudget(ctx, "food")
		require.NoError(t, err)
		assert.Equal(t, models.LevelNoBudget, status.Level, "categories match exactly")
	})
}

// ── storage failures (mocked) ────────────────────────────────────────────────

func newMockedRecordService(t *testing.T) (RecordService, *mock.MockRecordRepository, *mock.MockBudgetRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock.NewMockRecordRepository(ctrl)
	budgets := mock.NewMockBudgetRepository(ctrl)

	storage := mock.NewMockStorage(ctrl)
	storage.EXPECT().Records().Return(records).AnyTimes()
	storage.EXPECT().Budgets().Return(budgets).AnyTimes()

	return NewRecordService(storage, logger.Nop(), WithClock(func() time.Time { return testNow })), records, budgets
}

func TestRecordService_List_StorageError(t *testing.T) {
	svc, records, _ := newMockedRecordService(t)
	ctx := context.Background()
	cause := errors.New("connection reset")

	records.EXPECT().GetAll(ctx).Return(nil, cause)

	_, err := svc.List(ctx)
	require.ErrorIs(t, err, ErrRecordsNotLoaded)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, app.MsgRecordsNotLoaded, app.UserMessage(err))
}

func TestRecordService_Create_StorageError(t *testing.T) {
	svc, records, _ := newMockedRecordService(t)
	ctx := context.Background()
	cause := errors.New("disk I/O error")

	records.EXPECT().Add(ctx, gomock.Any()).Return(models.Record{}, cause)

	_, _, err := svc.Create(ctx, expense("Lunch", "10", "Food"))
	require.ErrorIs(t, err, ErrRecordNotSaved)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, app.MsgRecordNotSaved, app.UserMessage(err))
}

func TestRecordService_Create_ValidationSkipsStorage(t *testing.T) {
	svc, _, _ := newMockedRecordService(t)

	// No expectations: any repository call fails the test.
	_, _, err := svc.Create(context.Background(), expense("", "10", "Food"))
	require.ErrorIs(t, err, validators.ErrValidation)
}

func TestRecordService_Create_BudgetCheckFailureKeepsRecord(t *testing.T) {
	svc, records, budgets := newMockedRecordService(t)
	ctx := context.Background()
	saved := models.Record{ID: 7, Name: "Lunch", Amount: dec("10"), Category: "Food", Kind: models.Expense, CreatedAt: testNow}

	records.EXPECT().Add(ctx, gomock.Any()).Return(saved, nil)
	budgets.EXPECT().GetAll(ctx).Return(nil, errors.New("timeout"))

	r, status, err := svc.Create(ctx, expense("Lunch", "10", "Food"))
	require.NoError(t, err)
	assert.Equal(t, saved, r)
	assert.Equal(t, models.BudgetStatus{}, status)
}

func TestRecordService_Update_StorageError(t *testing.T) {
	svc, records, _ := newMockedRecordService(t)
	ctx := context.Background()

	records.EXPECT().Update(ctx, gomock.Any()).Return(store.ErrExecutingStatement)

	_, _, err := svc.Update(ctx, 3, income("Salary", "10", "Work"))
	require.ErrorIs(t, err, ErrRecordNotUpdated)
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}

func TestRecordService_Delete_StorageError(t *testing.T) {
	svc, records, _ := newMockedRecordService(t)
	ctx := context.Background()

	records.EXPECT().Delete(ctx, int64(3)).Return(store.ErrNotInitialized)
	records.EXPECT().DeleteAll(ctx).Return(store.ErrNotInitialized)

	err := svc.Delete(ctx, 3)
	require.ErrorIs(t, err, ErrRecordNotDeleted)
	assert.ErrorIs(t, err, store.ErrNotInitialized)

	err = svc.DeleteAll(ctx)
	require.ErrorIs(t, err, ErrRecordsNotDeleted)
}

func TestRecordService_CheckBudget_StorageErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("budgets", func(t *testing.T) {
		svc, _, budgets := newMockedRecordService(t)
		budgets.EXPECT().GetAll(ctx).Return(nil, errors.New("boom"))

		_, err := svc.CheckBudget(ctx, "Food")
		require.ErrorIs(t, err, ErrBudgetsNotLoaded)
	})

	t.Run("records", func(t *testing.T) {
		svc, records, budgets := newMockedRecordService(t)
		budgets.EXPECT().GetAll(ctx).Return([]models.Budget{}, nil)
		records.EXPECT().GetAll(ctx).Return(nil, errors.New("boom"))

		_, err := svc.CheckBudget(ctx, "Food")
		require.ErrorIs(t, err, ErrRecordsNotLoaded)
	})
}
