/*
 * Status - unit tests
 *
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

	"github.com/stretchr/testify/assert"
)

func Test_Status_healthy(t *testing.T) {
	type testCase struct {
		name     string
		initial  bool
		set      bool
		expected bool
	}

	run := func(t *testing.T, tc testCase) {
		s := &Status{healthy: mutexedBool{v: tc.initial}}
		s.SetHealthy(tc.set)
		assert.Equal(t, tc.expected, s.IsHealthy())
	}

	testCases := []testCase{
		{name: "set to true", initial: false, set: true, expected: true},
		{name: "set to false", initial: true, set: false, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func Test_Status_ready(t *testing.T) {
	type testCase struct {
		name     string
		initial  bool
		set      bool
		expected bool
	}

	run := func(t *testing.T, tc testCase) {
		s := &Status{ready: mutexedBool{v: tc.initial}}
		s.SetReady(tc.set)
		assert.Equal(t, tc.expected, s.IsReady())
	}

	testCases := []testCase{
		{name: "set to true", initial: false, set: true, expected: true},
		{name: "set to false", initial: true, set: false, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func Test_Status_zeroValue(t *testing.T) {
	s := &Status{}
	assert.False(t, s.IsHealthy())
	assert.False(t, s.IsReady())
}
