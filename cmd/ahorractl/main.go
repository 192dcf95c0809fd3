// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command ahorractl is a small terminal client for a running ahorra server.
//
//	ahorractl [-s address] [-client-timeout timeout] [-log-level debug] <command> [args]
//
// The server address and timeout are also read from ADAPTER_ADDRESS and
// ADAPTER_REQUEST_TIMEOUT or from the "adapter" section of a JSON config.
// Run it without a command to list the available ones.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-ahorra/internal/adapter"
	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
)

func main() {
	_ = godotenv.Load()

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ahorractl [flags] <command> [args]\n\nflags:\n")
		flag.PrintDefaults()
		printCommands(flag.CommandLine.Output())
	}

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	// stdout carries command output; API calls are logged to stderr at debug.
	log := &logger.Logger{Logger: logger.NewLogger("ahorractl").Output(os.Stderr)}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	api, err := adapter.NewHTTPServerAdapter(cfg.Adapter.HTTPAddress, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, api, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
