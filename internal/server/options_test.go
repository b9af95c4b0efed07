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
	"testing"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SocketOptions_defaults(t *testing.T) {
	s := SocketOptions{}
	require.NoError(t, env.Parse(&s))
	assert.Equal(t, "localhost", s.GatewayHost)
	assert.Equal(t, uint16(8888), s.GatewayPort)
	assert.Equal(t, "0.0.0.0", s.MetricsHost)
	assert.Equal(t, uint16(8080), s.MetricsPort)
	assert.Equal(t, 60000, s.ReadTimeout)
	assert.Equal(t, 60000, s.WriteTimeout)
}

func Test_SocketOptions_addresses(t *testing.T) {
	const testGatewayAddress = "10.0.0.1:1000"
	const testMetricsAddress = "10.0.0.2:2000"
	s := SocketOptions{
		GatewayHost: "10.0.0.1",
		GatewayPort: 1000,
		MetricsHost: "10.0.0.2",
		MetricsPort: 2000,
	}

	ga := s.GetGatewayAddress()
	ma := s.GetMetricsAddress()

	assert.Equal(t, testGatewayAddress, ga)
	assert.Equal(t, testMetricsAddress, ma)
}

func Test_SocketOptions_timeouts(t *testing.T) {
	const testReadTimeout = time.Duration(5000) * time.Millisecond
	const testWriteTimeout = time.Duration(15000) * time.Millisecond
	s := SocketOptions{
		ReadTimeout:  5000,
		WriteTimeout: 15000,
	}

	r := s.GetReadTimeout()
	w := s.GetWriteTimeout()

	assert.Equal(t, testReadTimeout, r)
	assert.Equal(t, testWriteTimeout, w)
}
