/*
 * Native wire types for the multi-provider DNS backend.
 *
 * The backend returns provider-tagged JSON in a semi-normalized shape;
 * fields that arrive with loose types (numeric booleans, stringified ids)
 * are decoded through explicit coercion types so that downstream code never
 * probes runtime types.
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

package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// FlexBool decodes JSON booleans, numbers and the strings "true"/"false"/
// "1"/"0" into a strict boolean. Absent or falsy input decodes to false.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", "0", `"false"`, `"0"`, `""`:
		*b = false
		return nil
	case "true", `"true"`, `"1"`:
		*b = true
		return nil
	}
	if n, err := strconv.ParseFloat(string(data), 64); err == nil {
		*b = n != 0
		return nil
	}
	// Unknown shapes decode to false rather than failing the whole payload.
	*b = false
	return nil
}

// FlexID decodes an identifier that may arrive as a JSON string or number.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// Int64 coerces the identifier to a numeric id.
func (f FlexID) Int64() (int64, bool) {
	id, err := strconv.ParseInt(string(f), 10, 64)
	return id, err == nil && id > 0
}

// Envelope is the top-level metadata every backend response carries.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// NativeProvider is a provider definition as delivered by the backend.
type NativeProvider struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	AuthFields []NativeAuthField `json:"authFields,omitempty"`
}

// NativeAuthField is one authentication input of a provider.
type NativeAuthField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// NativeCredential is a stored account as delivered by the backend.
type NativeCredential struct {
	ID        FlexID    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	AccountID string    `json:"accountId,omitempty"`
	Default   FlexBool  `json:"isDefault,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// NativeZone is a zone as delivered by the backend.
type NativeZone struct {
	ID          FlexID    `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status,omitempty"`
	RecordCount int       `json:"recordCount,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// NativeRecord is a record as delivered by the backend. The enabled state
// may arrive as a native boolean or as the status strings "1"/"0"; both are
// preserved here and resolved at the normalization boundary.
type NativeRecord struct {
	ID       FlexID   `json:"id"`
	Type     string   `json:"type"`
	Zone     string   `json:"zone,omitempty"`
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	TTL      int      `json:"ttl,omitempty"`
	Proxied  FlexBool `json:"proxied,omitempty"`
	Priority *int     `json:"priority,omitempty"`
	Weight   *int     `json:"weight,omitempty"`
	Line     *string  `json:"line,omitempty"`
	LineName *string  `json:"lineName,omitempty"`
	Remark   *string  `json:"remark,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"`
	Status   string   `json:"status,omitempty"`
}

// NativeRecordDraft is the outbound record payload. Only fields present in
// the draft are serialized; on update, absence means "do not change".
type NativeRecordDraft struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	TTL      *int    `json:"ttl,omitempty"`
	Proxied  *bool   `json:"proxied,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Weight   *int    `json:"weight,omitempty"`
	Line     *string `json:"line,omitempty"`
	Remark   *string `json:"remark,omitempty"`
}

// NativeLine is a routing line as delivered by the backend.
type NativeLine struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// ZoneCapabilities is the optional capability payload a record listing may
// carry for the queried zone.
type ZoneCapabilities struct {
	MinTTL      int      `json:"minTTL,omitempty"`
	RecordTypes []string `json:"recordTypes,omitempty"`
}

// ZonesResponse is the paged zone listing response.
type ZonesResponse struct {
	Envelope
	Zones []NativeZone `json:"zones"`
	Total int          `json:"total"`
}

// ZoneResponse wraps a single zone.
type ZoneResponse struct {
	Envelope
	Zone NativeZone `json:"zone"`
}

// RecordsResponse is the paged record listing response.
type RecordsResponse struct {
	Envelope
	Records      []NativeRecord    `json:"records"`
	Total        int               `json:"total"`
	Capabilities *ZoneCapabilities `json:"capabilities,omitempty"`
}

// RecordResponse wraps the optional record body a mutation returns.
type RecordResponse struct {
	Envelope
	Record *NativeRecord `json:"record,omitempty"`
}

// LinesResponse is the line listing response.
type LinesResponse struct {
	Envelope
	Lines []NativeLine `json:"lines"`
}

// MinTTLResponse carries the provider/zone minimum TTL.
type MinTTLResponse struct {
	Envelope
	MinTTL int `json:"minTTL"`
}

// ProvidersResponse is the provider listing response.
type ProvidersResponse struct {
	Envelope
	Providers []NativeProvider `json:"providers"`
}

// CredentialsResponse is the credential listing response.
type CredentialsResponse struct {
	Envelope
	Credentials []NativeCredential `json:"credentials"`
}
