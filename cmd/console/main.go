/*
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package main

import (
	"context"
	"net/http"
	"time"

	"multidns-console/internal/api"
	"multidns-console/internal/prefs"
	"multidns-console/internal/server"
	"multidns-console/internal/session"

	"github.com/caarlos0/env/v8"
	log "github.com/sirupsen/logrus"
)

// Config contains the console configuration read from the environment.
type Config struct {
	// Base URL of the multi-provider DNS backend
	BackendURL string `env:"BACKEND_URL,required"`
	// Bearer token for the backend, empty to disable authentication
	BackendToken string `env:"BACKEND_TOKEN"`
	// Path of the preference file, empty to keep preferences in memory
	PrefsPath string `env:"PREFS_PATH"`
	// Log level
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Backend request timeout in milliseconds
	BackendTimeout int `env:"BACKEND_TIMEOUT" envDefault:"30000"`
}

// configureLogger applies the configured log level.
func configureLogger(cfg Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info.", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// newStore builds the preference store from the configuration.
func newStore(cfg Config) (prefs.Store, error) {
	if cfg.PrefsPath == "" {
		log.Info("No preference path configured, preferences will not survive restarts.")
		return prefs.NewMemoryStore(), nil
	}
	return prefs.NewFileStore(cfg.PrefsPath)
}

// main function
func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}
	configureLogger(cfg)

	socketOptions := server.SocketOptions{}
	if err := env.Parse(&socketOptions); err != nil {
		log.Fatal(err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	client := api.NewHTTPClient(cfg.BackendURL, cfg.BackendToken, &http.Client{
		Timeout: time.Duration(cfg.BackendTimeout) * time.Millisecond,
	})
	sess := session.New(client, store)

	// Start the metrics and probe socket
	log.Infof("Starting metrics and probe socket on %s", socketOptions.GetMetricsAddress())
	status := server.Status{}
	status.SetHealthy(true)
	metricsSocket := server.NewMetricsSocket(&status)
	startedChan := make(chan struct{})
	go metricsSocket.Start(startedChan, socketOptions)
	<-startedChan

	// Load the selection before accepting traffic; a failed load still
	// starts the gateway so the state can be inspected and retried.
	if err := sess.Load(context.Background()); err != nil {
		log.Errorf("Initial load failed: %v", err)
	}

	log.Infof("Starting gateway on %s", socketOptions.GetGatewayAddress())
	srv := server.Init(socketOptions, server.NewGateway(sess))
	status.SetReady(true)

	server.ShutdownGracefully(srv)
	status.SetReady(false)
	status.SetHealthy(false)
}
