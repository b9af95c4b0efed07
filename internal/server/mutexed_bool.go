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

import "sync"

// mutexedBool is a boolean flag safe for concurrent use.
type mutexedBool struct {
	m sync.Mutex
	v bool
}

// Set stores the value.
func (b *mutexedBool) Set(v bool) {
	b.m.Lock()
	b.v = v
	b.m.Unlock()
}

// Get reads the value.
func (b *mutexedBool) Get() bool {
	b.m.Lock()
	defer b.m.Unlock()
	return b.v
}
