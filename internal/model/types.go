/*
 * Canonical, provider-agnostic types.
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

import "time"

// RemarkMode describes how a provider attaches free-text remarks to records.
type RemarkMode string

const (
	RemarkInline      RemarkMode = "inline"
	RemarkSeparate    RemarkMode = "separate"
	RemarkUnsupported RemarkMode = "unsupported"
)

// PagingMode describes where record listings are paginated.
type PagingMode string

const (
	PagingServer PagingMode = "server"
	PagingClient PagingMode = "client"
)

// Capability is the feature-support profile of one provider.
type Capability struct {
	SupportsWeight     bool       `json:"supportsWeight"`
	SupportsLine       bool       `json:"supportsLine"`
	SupportsStatus     bool       `json:"supportsStatus"`
	SupportsRemark     bool       `json:"supportsRemark"`
	SupportsURLForward bool       `json:"supportsURLForward"`
	SupportsLogs       bool       `json:"supportsLogs"`
	RemarkMode         RemarkMode `json:"remarkMode"`
	Paging             PagingMode `json:"paging"`
	RequiresDomainID   bool       `json:"requiresDomainID"`
	RecordTypes        []string   `json:"recordTypes"`
}

// Provider describes one DNS hosting backend as delivered by the server.
type Provider struct {
	ID         ProviderID  `json:"id"`
	Name       string      `json:"name"`
	AuthFields []AuthField `json:"authFields,omitempty"`
}

// AuthField is one required or optional authentication input for a provider.
type AuthField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Credential is one set of stored auth material for one provider.
type Credential struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Provider   ProviderID `json:"provider"`
	ExternalID string     `json:"externalId,omitempty"`
	Default    bool       `json:"isDefault,omitempty"`
	CreatedAt  time.Time  `json:"createdAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt,omitempty"`
}

// Zone is a DNS domain managed under one credential.
type Zone struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Status       string    `json:"status,omitempty"`
	RecordCount  int       `json:"recordCount,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
	CredentialID int64     `json:"credentialId,omitempty"`
}

// Record is the canonical DNS record representation. Optional fields are
// pointers: nil means the owning provider has no concept of the field, or
// the field was absent upstream.
type Record struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	ZoneName string  `json:"zone,omitempty"`
	Name     string  `json:"name"`
	Content  string  `json:"content"`
	TTL      int     `json:"ttl,omitempty"`
	Proxied  bool    `json:"proxied,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Weight   *int    `json:"weight,omitempty"`
	LineCode *string `json:"line,omitempty"`
	LineName *string `json:"lineName,omitempty"`
	Remark   *string `json:"remark,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
}

// RecordDraft is a record as edited by the user. Only non-nil fields are
// sent on update: absence means "do not change".
type RecordDraft struct {
	Type     string
	Name     string
	Content  string
	TTL      *int
	Proxied  *bool
	Priority *int
	Weight   *int
	Line     *string
	Remark   *string
}

// Line is one routing line offered by a line-capable provider.
type Line struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}
