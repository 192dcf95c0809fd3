// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-backend storage backend: sqlite, postgres or redis
//	-d database DSN (SQLite path or PostgreSQL URI)
//	-redis-address redis address in format [host]:[port]
//	-redis-password redis AUTH password
//	-redis-db redis logical database index
//	-redis-prefix key prefix for every redis key
//	-c/-config json file path with configs
//	-log-level zerolog level name
//	-log-file log file path
//	-bcrypt-cost bcrypt work factor
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-monitor-interval budget monitor interval (e.g., "1m")
//	-s server address used by ahorractl (host:port or base URL)
//	-client-timeout ahorractl request timeout (e.g., "15s")
func ParseFlags() *StructuredConfig {
	var serverAddress, redisAddress NetAddress
	var backend string
	var databaseDSN string
	var redisPassword, redisPrefix string
	var redisDB int
	var jsonConfigPath string
	var logLevel, logFile string
	var bcryptCost int
	var requestTimeout time.Duration
	var monitorInterval time.Duration
	var adapterAddress string
	var adapterTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&backend, "backend", "", "Storage backend: sqlite, postgres or redis")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.Var(&redisAddress, "redis-address", "Redis address host:port")
	flag.StringVar(&redisPassword, "redis-password", "", "Redis password")
	flag.IntVar(&redisDB, "redis-db", 0, "Redis database index")
	flag.StringVar(&redisPrefix, "redis-prefix", "", "Redis key prefix")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Log file path")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&monitorInterval, "monitor-interval", 0, "Budget monitor interval (e.g., 1m)")
	flag.StringVar(&adapterAddress, "s", "", "Server address used by ahorractl")
	flag.DurationVar(&adapterTimeout, "client-timeout", 0, "ahorractl request timeout (e.g., 15s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel:   logLevel,
			LogFile:    logFile,
			BcryptCost: bcryptCost,
		},
		Storage: Storage{
			Backend: backend,
			DB: DB{
				DSN: databaseDSN,
			},
			KV: KV{
				Address:   redisAddress.String(),
				Password:  redisPassword,
				DB:        redisDB,
				KeyPrefix: redisPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{MonitorInterval: monitorInterval},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: adapterTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
