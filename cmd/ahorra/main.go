// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/handler"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/server"
	"github.com/MKhiriev/go-ahorra/internal/service"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env is fine; real environment variables still apply
	_ = godotenv.Load()

	log := logger.NewLogger("ahorra")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.LogFile != "" {
		log = logger.NewFileLogger("ahorra", cfg.App.LogFile)
	}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	log.Debug().Object("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storage, err := store.NewStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage")
	}
	defer func() {
		if closeErr := storage.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storage")
		}
	}()

	if err = storage.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("error initializing storage")
	}

	services := service.NewServices(storage, *cfg, log)

	background := workers.NewWorkers(services, cfg.Workers, log)
	background.Start(ctx)
	defer background.Stop()

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
