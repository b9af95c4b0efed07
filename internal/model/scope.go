/*
 * Credential scope - one account or all accounts of a provider.
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

package model

import "strconv"

// ScopeAll is the persisted sentinel for the "all accounts" scope.
const ScopeAll = "all"

// CredentialScope selects either one concrete credential or all credentials
// configured for the active provider. The zero value is the "all" scope.
type CredentialScope struct {
	id int64
}

// AllCredentials returns the aggregate scope.
func AllCredentials() CredentialScope {
	return CredentialScope{}
}

// OneCredential returns a scope for a single credential id.
func OneCredential(id int64) CredentialScope {
	return CredentialScope{id: id}
}

// ParseScope interprets a raw scope value. The literal "all" (and the empty
// string) yield the aggregate scope; a string-typed numeric id is coerced to
// a numeric id. Anything else is reported as not ok.
func ParseScope(raw string) (CredentialScope, bool) {
	if raw == "" || raw == ScopeAll {
		return AllCredentials(), true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return AllCredentials(), false
	}
	return OneCredential(id), true
}

// IsAll reports whether the scope aggregates all credentials.
func (s CredentialScope) IsAll() bool {
	return s.id == 0
}

// ID returns the concrete credential id and whether one is set.
func (s CredentialScope) ID() (int64, bool) {
	return s.id, s.id != 0
}

// String renders the scope in its persisted form.
func (s CredentialScope) String() string {
	if s.IsAll() {
		return ScopeAll
	}
	return strconv.FormatInt(s.id, 10)
}
