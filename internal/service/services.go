// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/store"
)

type Services struct {
	UserService   UserService
	RecordService RecordService
	BudgetService BudgetService
	ReportService ReportService
}

func NewServices(storage store.Storage, cfg config.StructuredConfig, logger *logger.Logger, opts ...Option) *Services {
	return &Services{
		UserService:   NewUserService(storage, cfg.App.BcryptCost, logger),
		RecordService: NewRecordService(storage, logger, opts...),
		BudgetService: NewBudgetService(storage, logger),
		ReportService: NewReportService(storage, logger, opts...),
	}
}

// Option customizes services built by [NewServices], [NewRecordService] and
// [NewReportService].
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock overrides the source of "now".
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
