/*
 * Preference store - durable client-side selection keys.
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

// MinPageSize is the smallest accepted page-size preference.
const MinPageSize = 20

// DefaultPageSize is used when no valid page-size preference is stored.
const DefaultPageSize = 20

// Store keeps the small set of durable preference keys: selected provider,
// selected credential scope and page size. Values are revalidated against
// live data on every load, so a store never has to guarantee consistency.
type Store interface {
	// Provider returns the persisted provider identifier, if any.
	Provider() (string, bool)
	// SetProvider persists the provider identifier.
	SetProvider(provider string) error
	// Credential returns the persisted credential scope ("all" or a
	// stringified integer id), if any.
	Credential() (string, bool)
	// SetCredential persists the credential scope.
	SetCredential(scope string) error
	// ClearSelection removes both selection keys.
	ClearSelection() error
	// PageSize returns the persisted page-size preference, if any.
	PageSize() (int, bool)
	// SetPageSize persists the page-size preference.
	SetPageSize(size int) error
}

// NormalizePageSize clamps a stored page size to the accepted range.
func NormalizePageSize(size int, ok bool) int {
	if !ok || size < MinPageSize {
		return DefaultPageSize
	}
	return size
}
