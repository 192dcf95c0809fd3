// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler builds the inbound transport handlers from the services.
package handler

import (
	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/handler/http"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
