/*
 * In-memory preference store.
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

package prefs

import "sync"

// MemoryStore keeps preferences in memory. Used in tests and when no
// preference path is configured.
type MemoryStore struct {
	m          sync.Mutex
	provider   string
	credential string
	pageSize   int
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Provider returns the stored provider identifier, if any.
func (s *MemoryStore) Provider() (string, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.provider, s.provider != ""
}

// SetProvider stores the provider identifier.
func (s *MemoryStore) SetProvider(provider string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.provider = provider
	return nil
}

// Credential returns the stored credential scope, if any.
func (s *MemoryStore) Credential() (string, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.credential, s.credential != ""
}

// SetCredential stores the credential scope.
func (s *MemoryStore) SetCredential(scope string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.credential = scope
	return nil
}

// ClearSelection removes both selection keys.
func (s *MemoryStore) ClearSelection() error {
	s.m.Lock()
	defer s.m.Unlock()
	s.provider = ""
	s.credential = ""
	return nil
}

// PageSize returns the stored page-size preference, if any.
func (s *MemoryStore) PageSize() (int, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.pageSize, s.pageSize != 0
}

// SetPageSize stores the page-size preference.
func (s *MemoryStore) SetPageSize(size int) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.pageSize = size
	return nil
}
