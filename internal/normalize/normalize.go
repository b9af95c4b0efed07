/*
 * Normalizer - conversion between native wire shapes and canonical types.
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

package normalize

import (
	"multidns-console/internal/api"
	"multidns-console/internal/model"
)

// getEnabled derives the canonical tri-state enabled flag. The native
// boolean wins when present; otherwise the status strings "1"/"0" are
// interpreted; anything else leaves the flag undefined because the provider
// has no concept of disabling records.
func getEnabled(native api.NativeRecord) *bool {
	if native.Enabled != nil {
		v := *native.Enabled
		return &v
	}
	switch native.Status {
	case "1":
		v := true
		return &v
	case "0":
		v := false
		return &v
	}
	return nil
}

// GetRecord converts a native record to its canonical form. Native "value"
// becomes canonical "content"; proxied is coerced to a strict boolean.
func GetRecord(native api.NativeRecord) model.Record {
	return model.Record{
		ID:       string(native.ID),
		Type:     native.Type,
		ZoneName: native.Zone,
		Name:     native.Name,
		Content:  native.Value,
		TTL:      native.TTL,
		Proxied:  bool(native.Proxied),
		Priority: native.Priority,
		Weight:   native.Weight,
		LineCode: native.Line,
		LineName: native.LineName,
		Remark:   native.Remark,
		Enabled:  getEnabled(native),
	}
}

// GetRecordArray converts a slice of native records.
func GetRecordArray(natives []api.NativeRecord) []model.Record {
	records := make([]model.Record, len(natives))
	for i, n := range natives {
		records[i] = GetRecord(n)
	}
	return records
}

// GetRecordPtr converts the optional record body a mutation returns. A nil
// input stays nil: callers must then rely on a listing refresh.
func GetRecordPtr(native *api.NativeRecord) *model.Record {
	if native == nil {
		return nil
	}
	r := GetRecord(*native)
	return &r
}

// GetNativeDraft converts a canonical draft to the outbound wire shape.
// Canonical "content" becomes native "value"; only fields present in the
// draft are carried over, so absent fields mean "do not change" on update.
func GetNativeDraft(draft model.RecordDraft) api.NativeRecordDraft {
	return api.NativeRecordDraft{
		Type:     draft.Type,
		Name:     draft.Name,
		Value:    draft.Content,
		TTL:      draft.TTL,
		Proxied:  draft.Proxied,
		Priority: draft.Priority,
		Weight:   draft.Weight,
		Line:     draft.Line,
		Remark:   draft.Remark,
	}
}

// GetZone converts a native zone to canonical form and attaches the active
// credential id. The id is only attached when the scope names a concrete
// credential, never for the aggregate scope.
func GetZone(native api.NativeZone, scope model.CredentialScope) model.Zone {
	zone := model.Zone{
		ID:          string(native.ID),
		Name:        native.Name,
		Status:      native.Status,
		RecordCount: native.RecordCount,
		UpdatedAt:   native.UpdatedAt,
	}
	if id, ok := scope.ID(); ok {
		zone.CredentialID = id
	}
	return zone
}

// GetZoneArray converts a slice of native zones.
func GetZoneArray(natives []api.NativeZone, scope model.CredentialScope) []model.Zone {
	zones := make([]model.Zone, len(natives))
	for i, n := range natives {
		zones[i] = GetZone(n, scope)
	}
	return zones
}

// GetLine converts a native routing line.
func GetLine(native api.NativeLine) model.Line {
	return model.Line{
		Code:   native.Code,
		Name:   native.Name,
		Parent: native.Parent,
	}
}

// GetLineArray converts a slice of native lines.
func GetLineArray(natives []api.NativeLine) []model.Line {
	lines := make([]model.Line, len(natives))
	for i, n := range natives {
		lines[i] = GetLine(n)
	}
	return lines
}

// GetCredential converts a native credential. Ids that do not coerce to a
// positive integer yield a zero id; the directory drops such entries.
func GetCredential(native api.NativeCredential) model.Credential {
	id, _ := native.ID.Int64()
	return model.Credential{
		ID:         id,
		Name:       native.Name,
		Provider:   model.NormalizeProvider(model.ProviderID(native.Provider)),
		ExternalID: native.AccountID,
		Default:    bool(native.Default),
		CreatedAt:  native.CreatedAt,
		UpdatedAt:  native.UpdatedAt,
	}
}

// GetCredentialArray converts a slice of native credentials, dropping
// entries whose id cannot be coerced.
func GetCredentialArray(natives []api.NativeCredential) []model.Credential {
	credentials := []model.Credential{}
	for _, n := range natives {
		c := GetCredential(n)
		if c.ID == 0 {
			continue
		}
		credentials = append(credentials, c)
	}
	return credentials
}

// GetProvider converts a native provider definition.
func GetProvider(native api.NativeProvider) model.Provider {
	fields := make([]model.AuthField, len(native.AuthFields))
	for i, f := range native.AuthFields {
		fields[i] = model.AuthField{Key: f.Key, Label: f.Label, Required: f.Required}
	}
	return model.Provider{
		ID:         model.NormalizeProvider(model.ProviderID(native.ID)),
		Name:       native.Name,
		AuthFields: fields,
	}
}

// GetProviderArray converts a slice of native provider definitions.
func GetProviderArray(natives []api.NativeProvider) []model.Provider {
	providers := make([]model.Provider, len(natives))
	for i, n := range natives {
		providers[i] = GetProvider(n)
	}
	return providers
}
