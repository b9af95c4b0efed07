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

// Status tracks the liveness and readiness flags the probe handlers report.
// Healthy means the process is up; ready additionally means the gateway
// accepts traffic. Both flags start false.
type Status struct {
	healthy mutexedBool
	ready   mutexedBool
}

// SetHealthy stores the liveness flag.
func (s *Status) SetHealthy(v bool) {
	s.healthy.Set(v)
}

// SetReady stores the readiness flag.
func (s *Status) SetReady(v bool) {
	s.ready.Set(v)
}

// IsHealthy reads the liveness flag.
func (s *Status) IsHealthy() bool {
	return s.healthy.Get()
}

// IsReady reads the readiness flag.
func (s *Status) IsReady() bool {
	return s.ready.Get()
}
