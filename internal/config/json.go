// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config file.
type StructuredJSONConfig struct {
	App struct {
		LogLevel   string `json:"log_level"`
		LogFile    string `json:"log_file"`
		BcryptCost int    `json:"bcrypt_cost"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		KV struct {
			Address   string `json:"address"`
			Password  string `json:"password"`
			DB        int    `json:"db"`
			KeyPrefix string `json:"key_prefix"`
		} `json:"kv,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		MonitorInterval Duration `json:"monitor_interval"`
	} `json:"workers,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel:   jsonCfg.App.LogLevel,
			LogFile:    jsonCfg.App.LogFile,
			BcryptCost: jsonCfg.App.BcryptCost,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			KV: KV{
				Address:   jsonCfg.Storage.KV.Address,
				Password:  jsonCfg.Storage.KV.Password,
				DB:        jsonCfg.Storage.KV.DB,
				KeyPrefix: jsonCfg.Storage.KV.KeyPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			MonitorInterval: time.Duration(jsonCfg.Workers.MonitorInterval),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
