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
package server

import (
	"fmt"
	"time"
)

// SocketOptions contains the arguments passed as environment variables that
// influence the exposed sockets.
type SocketOptions struct {
	// Gateway host
	GatewayHost string `env:"GATEWAY_HOST" envDefault:"localhost"`
	// Gateway port
	GatewayPort uint16 `env:"GATEWAY_PORT" envDefault:"8888"`
	// Metrics and probe host
	MetricsHost string `env:"METRICS_HOST" envDefault:"0.0.0.0"`
	// Metrics and probe port
	MetricsPort uint16 `env:"METRICS_PORT" envDefault:"8080"`
	// Read timeout in milliseconds
	ReadTimeout int `env:"READ_TIMEOUT" envDefault:"60000"`
	// Write timeout in milliseconds
	WriteTimeout int `env:"WRITE_TIMEOUT" envDefault:"60000"`
}

// GetGatewayAddress returns the gateway address as "host:port".
func (o SocketOptions) GetGatewayAddress() string {
	return fmt.Sprintf("%s:%d", o.GatewayHost, o.GatewayPort)
}

// GetMetricsAddress returns the address of the metrics and probe socket as
// "host:port".
func (o SocketOptions) GetMetricsAddress() string {
	return fmt.Sprintf("%s:%d", o.MetricsHost, o.MetricsPort)
}

// GetReadTimeout returns the read timeout in milliseconds.
func (o SocketOptions) GetReadTimeout() time.Duration {
	return time.Duration(o.ReadTimeout) * time.Millisecond
}

// GetWriteTimeout returns the write timeout in milliseconds.
func (o SocketOptions) GetWriteTimeout() time.Duration {
	return time.Duration(o.WriteTimeout) * time.Millisecond
}
