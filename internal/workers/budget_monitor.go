// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/internal/service"
	"github.com/MKhiriev/go-ahorra/models"
)

const defaultMonitorInterval = time.Minute

// BudgetMonitor recomputes the dashboard notifications and logs the ones
// that need attention. It checks once per interval and again after every
// write published on the change hubs it watches. Budget alerts published by
// the record service are logged as they arrive.
type BudgetMonitor struct {
	reports  service.ReportService
	interval time.Duration
	logger   *logger.Logger

	alerts  *notify.Hub[models.BudgetAlert]
	changes []*notify.Hub[models.Change]

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	unwatch []func()

	// recheck coalesces change events: with capacity one, a burst of writes
	// arriving during a check schedules a single follow-up check.
	recheck chan struct{}

	// seen holds the notification ids reported by the previous check, so a
	// persisting condition is logged at Warn only once.
	checkMu sync.Mutex
	seen    map[string]struct{}
}

// MonitorOption configures optional BudgetMonitor behaviour.
type MonitorOption func(*BudgetMonitor)

// WatchAlerts makes the monitor log every alert published on hub while it
// runs.
func WatchAlerts(hub *notify.Hub[models.BudgetAlert]) MonitorOption {
	return func(m *BudgetMonitor) {
		m.alerts = hub
	}
}

// WatchChanges makes the monitor re-check after every change published on
// any of hubs while it runs. Nil hubs are ignored.
func WatchChanges(hubs ...*notify.Hub[models.Change]) MonitorOption {
	return func(m *BudgetMonitor) {
		for _, h := range hubs {
			if h != nil {
				m.changes = append(m.changes, h)
			}
		}
	}
}

// NewBudgetMonitor creates a BudgetMonitor that checks reports every
// interval. If interval is zero or negative it defaults to one minute. The
// monitor is idle until Start is called.
func NewBudgetMonitor(reports service.ReportService, interval time.Duration, log *logger.Logger, opts ...MonitorOption) *BudgetMonitor {
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	m := &BudgetMonitor{
		reports:  reports,
		interval: interval,
		logger:   log,
		recheck:  make(chan struct{}, 1),
		seen:     map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start implements Worker. It stops any previously running loop, subscribes
// to the watched hubs, runs one check immediately and then one per interval
// and one per observed change until ctx is cancelled or Stop is called.
func (m *BudgetMonitor) Start(ctx context.Context) {
	m.Stop()

	m.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.unwatch = m.watch()
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.interval)
		defer t.Stop()

		m.Check(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				m.Check(jobCtx)
			case <-m.recheck:
				m.Check(jobCtx)
			}
		}
	}()
}

// Stop implements Worker. It unsubscribes from the watched hubs and waits for
// the loop to exit.
func (m *BudgetMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	unwatch := m.unwatch
	m.cancel = nil
	m.unwatch = nil
	m.mu.Unlock()

	for _, u := range unwatch {
		u()
	}
	if cancel != nil {
		cancel()
	}
	m.wg.Wait()

	// drop a change that arrived after the last check
	select {
	case <-m.recheck:
	default:
	}
}

// watch subscribes to the configured hubs and returns the matching
// unsubscribe funcs.
func (m *BudgetMonitor) watch() []func() {
	var unwatch []func()

	if m.alerts != nil {
		sub := m.alerts.Subscribe(m.onAlert)
		unwatch = append(unwatch, func() { m.alerts.Unsubscribe(sub) })
	}
	for _, hub := range m.changes {
		sub := hub.Subscribe(m.onChange)
		unwatch = append(unwatch, func() { hub.Unsubscribe(sub) })
	}

	return unwatch
}

// onChange runs inside the writer's Publish call and must not block it.
func (m *BudgetMonitor) onChange(_ context.Context, change models.Change) error {
	select {
	case m.recheck <- struct{}{}:
	default:
	}
	m.logger.Debug().
		Str("func", "BudgetMonitor.onChange").
		Str("table", change.Table).
		Str("action", string(change.Action)).
		Int64("id", change.ID).
		Msg("re-check scheduled")
	return nil
}

func (m *BudgetMonitor) onAlert(_ context.Context, alert models.BudgetAlert) error {
	m.logger.Warn().
		Str("func", "BudgetMonitor.onAlert").
		Str("category", alert.Status.Category).
		Str("budget_level", string(alert.Status.Level)).
		Str("percent", alert.Status.Percent.String()).
		Int64("record_id", alert.RecordID).
		Time("at", alert.At).
		Msg("budget alert")
	return nil
}

// Check runs one evaluation and returns the notifications that need
// attention. Errors are logged and yield nil.
func (m *BudgetMonitor) Check(ctx context.Context) []models.Notification {
	m.checkMu.Lock()
	defer m.checkMu.Unlock()

	log := m.logger.With().Str("func", "BudgetMonitor.Check").Logger()

	notifications, err := m.reports.Notifications(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Err(err).Msg("error computing notifications")
		}
		return nil
	}

	var pending []models.Notification
	current := make(map[string]struct{}, len(notifications))
	for _, n := range notifications {
		if n.Kind == models.NotificationAllGood {
			continue
		}
		pending = append(pending, n)
		current[n.ID] = struct{}{}

		event := log.Debug()
		if _, ok := m.seen[n.ID]; !ok {
			event = log.Warn()
		}
		event.Str("id", n.ID).Str("kind", string(n.Kind)).Msg(n.Message)
	}
	m.seen = current

	return pending
}
