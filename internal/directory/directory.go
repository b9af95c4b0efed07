/*
 * Credential directory - derived lookups over the configured accounts.
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

package directory

import "multidns-console/internal/model"

// Directory is a read-only view over a snapshot of configured credentials.
// Provider identifiers are alias-normalized before every comparison, so
// accounts stored under either historical identifier belong to one logical
// provider.
type Directory struct {
	credentials []model.Credential
}

// New creates a directory over a credential snapshot.
func New(credentials []model.Credential) *Directory {
	snapshot := make([]model.Credential, len(credentials))
	copy(snapshot, credentials)
	return &Directory{credentials: snapshot}
}

// All returns the full snapshot in its original order.
func (d *Directory) All() []model.Credential {
	out := make([]model.Credential, len(d.credentials))
	copy(out, d.credentials)
	return out
}

// ListByProvider returns the credentials belonging to a provider, in
// snapshot order.
func (d *Directory) ListByProvider(p model.ProviderID) []model.Credential {
	p = model.NormalizeProvider(p)
	out := []model.Credential{}
	for _, c := range d.credentials {
		if model.NormalizeProvider(c.Provider) == p {
			out = append(out, c)
		}
	}
	return out
}

// CountByProvider returns the number of credentials configured for a
// provider.
func (d *Directory) CountByProvider(p model.ProviderID) int {
	p = model.NormalizeProvider(p)
	n := 0
	for _, c := range d.credentials {
		if model.NormalizeProvider(c.Provider) == p {
			n++
		}
	}
	return n
}

// ByID looks up a credential by id.
func (d *Directory) ByID(id int64) (model.Credential, bool) {
	for _, c := range d.credentials {
		if c.ID == id {
			return c, true
		}
	}
	return model.Credential{}, false
}

// Owns reports whether a credential id belongs to the given provider.
func (d *Directory) Owns(p model.ProviderID, id int64) bool {
	c, ok := d.ByID(id)
	if !ok {
		return false
	}
	return model.NormalizeProvider(c.Provider) == model.NormalizeProvider(p)
}
