// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the application's background workers from cfg. The
// budget monitor logs record alerts and re-checks after record and budget
// writes.
func NewWorkers(services *service.Services, cfg config.Workers, log *logger.Logger) *Workers {
	var opts []MonitorOption
	if services.RecordService != nil {
		opts = append(opts,
			WatchAlerts(services.RecordService.Alerts()),
			WatchChanges(services.RecordService.Changes()),
		)
	}
	if services.BudgetService != nil {
		opts = append(opts, WatchChanges(services.BudgetService.Changes()))
	}

	return &Workers{workers: []Worker{
		NewBudgetMonitor(services.ReportService, cfg.MonitorInterval, log, opts...),
	}}
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
