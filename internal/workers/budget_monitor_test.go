// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/models"
)

// spyReports counts Notifications calls and returns a settable result.
type spyReports struct {
	calls atomic.Int64

	mu            sync.Mutex
	notifications []models.Notification
	err           error
}

func (s *spyReports) set(n []models.Notification, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications, s.err = n, err
}

func (s *spyReports) Balance(context.Context) (models.Balance, error) {
	return models.Balance{}, nil
}

func (s *spyReports) Monthly(context.Context, int) ([]models.MonthlyTotals, error) {
	return nil, nil
}

func (s *spyReports) Notifications(context.Context) ([]models.Notification, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications, s.err
}

// syncBuffer is a bytes.Buffer safe for the monitor goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func bufferLogger(w *syncBuffer) *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(w).Level(zerolog.DebugLevel)}
}

var allGood = []models.Notification{{ID: "bienvenida", Kind: models.NotificationAllGood}}

// ── NewBudgetMonitor ─────────────────────────────────────────────────────────

func TestNewBudgetMonitor_DefaultInterval(t *testing.T) {
	m := NewBudgetMonitor(&spyReports{}, -time.Second, nil)
	assert.Equal(t, defaultMonitorInterval, m.interval)

	var _ Worker = m
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestBudgetMonitor_Start_ChecksOnTicker(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	m := NewBudgetMonitor(spy, 10*time.Millisecond, logger.Nop())

	m.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	m.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Notifications called %d times", got)
}

func TestBudgetMonitor_Start_ChecksImmediately(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	m := NewBudgetMonitor(spy, time.Hour, logger.Nop())

	m.Start(context.Background())
	defer m.Stop()

	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestBudgetMonitor_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	m := NewBudgetMonitor(spy, 10*time.Millisecond, logger.Nop())

	m.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	m.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no checks after Stop")
}

func TestBudgetMonitor_Stop_BeforeStart_NoPanic(t *testing.T) {
	m := NewBudgetMonitor(&spyReports{}, time.Second, logger.Nop())

	assert.NotPanics(t, func() { m.Stop() })
	assert.NotPanics(t, func() { m.Stop() })
}

func TestBudgetMonitor_ContextCancel_StopsGoroutine(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	m := NewBudgetMonitor(spy, 10*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	m.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(15 * time.Millisecond)

	calls := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, spy.calls.Load())
	m.Stop()
}

func TestBudgetMonitor_Restart(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	m := NewBudgetMonitor(spy, time.Hour, logger.Nop())

	m.Start(context.Background())
	m.Start(context.Background())
	m.Stop()

	assert.LessOrEqual(t, spy.calls.Load(), int64(2))
}

// ── Check ────────────────────────────────────────────────────────────────────

func TestBudgetMonitor_Check_ReturnsPending(t *testing.T) {
	exceeded := models.Notification{ID: "presupuesto-excedido-1", Kind: models.NotificationBudgetExceeded, Message: "over"}
	spy := &spyReports{}
	spy.set([]models.Notification{exceeded}, nil)
	m := NewBudgetMonitor(spy, time.Hour, logger.Nop())

	assert.Equal(t, []models.Notification{exceeded}, m.Check(context.Background()))

	spy.set(allGood, nil)
	assert.Empty(t, m.Check(context.Background()))
}

func TestBudgetMonitor_Check_WarnsOncePerCondition(t *testing.T) {
	near := models.Notification{ID: "presupuesto-alerta-2", Kind: models.NotificationBudgetNearLimit, Message: "close to the limit"}
	spy := &spyReports{}
	spy.set([]models.Notification{near}, nil)
	buf := &syncBuffer{}
	m := NewBudgetMonitor(spy, time.Hour, bufferLogger(buf))

	m.Check(context.Background())
	m.Check(context.Background())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"level":"warn"`))
	assert.Equal(t, 1, strings.Count(out, `"level":"debug"`))
	assert.Contains(t, out, "presupuesto-alerta-2")

	spy.set(allGood, nil)
	m.Check(context.Background())
	spy.set([]models.Notification{near}, nil)
	m.Check(context.Background())
	assert.Equal(t, 2, strings.Count(buf.String(), `"level":"warn"`), "a condition that clears and returns warns again")
}

func TestBudgetMonitor_Check_Error(t *testing.T) {
	spy := &spyReports{}
	spy.set(nil, errors.New("storage down"))
	buf := &syncBuffer{}
	m := NewBudgetMonitor(spy, time.Hour, bufferLogger(buf))

	require.Nil(t, m.Check(context.Background()))
	assert.Contains(t, buf.String(), "storage down")
}

// ── hub subscriptions ────────────────────────────────────────────────────────

func TestBudgetMonitor_ChangeTriggersOneRecheck(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	records := notify.NewHub[models.Change](models.TableRecords, logger.Nop())
	budgets := notify.NewHub[models.Change](models.TableBudgets, logger.Nop())
	m := NewBudgetMonitor(spy, time.Hour, logger.Nop(), WatchChanges(records, budgets, nil))

	m.Start(context.Background())
	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, records.Len())
	assert.Equal(t, 1, budgets.Len())

	require.NoError(t, records.Publish(context.Background(), models.Change{Table: models.TableRecords, Action: models.ActionCreated, ID: 7}))
	require.Eventually(t, func() bool { return spy.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(2), spy.calls.Load(), "one write, one re-check")

	require.NoError(t, budgets.Publish(context.Background(), models.Change{Table: models.TableBudgets, Action: models.ActionUpdated, ID: 1}))
	require.Eventually(t, func() bool { return spy.calls.Load() == 3 }, time.Second, 5*time.Millisecond)

	m.Stop()
	assert.Zero(t, records.Len())
	assert.Zero(t, budgets.Len())

	require.NoError(t, records.Publish(context.Background(), models.Change{Table: models.TableRecords, Action: models.ActionDeleted, ID: 7}))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(3), spy.calls.Load(), "no re-check after Stop")
}

func TestBudgetMonitor_ChangeBurstCoalesces(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	hub := notify.NewHub[models.Change](models.TableRecords, logger.Nop())
	m := NewBudgetMonitor(spy, time.Hour, logger.Nop(), WatchChanges(hub))

	// held so the loop cannot consume triggers while they are published
	m.checkMu.Lock()
	m.Start(context.Background())
	for i := range 5 {
		require.NoError(t, hub.Publish(context.Background(), models.Change{Table: models.TableRecords, Action: models.ActionCreated, ID: int64(i)}))
	}
	m.checkMu.Unlock()

	require.Eventually(t, func() bool { return spy.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(2), spy.calls.Load(), "initial check plus one coalesced re-check")
	m.Stop()
}

func TestBudgetMonitor_LogsAlerts(t *testing.T) {
	spy := &spyReports{}
	spy.set(allGood, nil)
	alerts := notify.NewHub[models.BudgetAlert]("budget-alerts", logger.Nop())
	buf := &syncBuffer{}
	m := NewBudgetMonitor(spy, time.Hour, bufferLogger(buf), WatchAlerts(alerts))

	m.Start(context.Background())
	require.Equal(t, 1, alerts.Len())

	alert := models.BudgetAlert{
		Status:   models.BudgetStatus{Category: "Food", Level: models.LevelExceeded},
		RecordID: 42,
		At:       time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, alerts.Publish(context.Background(), alert))

	out := buf.String()
	assert.Contains(t, out, `"message":"budget alert"`)
	assert.Contains(t, out, `"category":"Food"`)
	assert.Contains(t, out, `"budget_level":"exceeded"`)
	assert.Contains(t, out, `"record_id":42`)

	m.Stop()
	assert.Zero(t, alerts.Len())
}
