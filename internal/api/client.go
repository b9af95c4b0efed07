/*
 * Client - abstraction of the multi-provider DNS backend.
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
	"context"
	"fmt"

	"multidns-console/internal/model"
)

// Client is an abstraction of the backend REST API. Every listing call
// accepts a credential scope: the aggregate scope means "across all
// configured credentials for context", a concrete scope pins one account.
type Client interface {
	// ListZones returns one page of zones.
	ListZones(ctx context.Context, scope model.CredentialScope, page, pageSize int) (ZonesResponse, error)
	// GetZone returns a single zone.
	GetZone(ctx context.Context, zoneID string, scope model.CredentialScope) (ZoneResponse, error)
	// RefreshZones asks the backend to re-pull zones from the providers.
	RefreshZones(ctx context.Context, scope model.CredentialScope) error
	// ListRecords returns one page of records for a zone.
	ListRecords(ctx context.Context, zoneID string, scope model.CredentialScope, page, pageSize int) (RecordsResponse, error)
	// ListLines returns the routing lines available for a zone.
	ListLines(ctx context.Context, zoneID string, scope model.CredentialScope) (LinesResponse, error)
	// GetMinTTL returns the minimum TTL for a zone, 0 when unknown.
	GetMinTTL(ctx context.Context, zoneID string, scope model.CredentialScope) (int, error)
	// CreateRecord creates a record. The returned record may be nil when
	// the backend does not echo the created entity.
	CreateRecord(ctx context.Context, zoneID string, draft NativeRecordDraft, scope model.CredentialScope) (*NativeRecord, error)
	// UpdateRecord updates a record. The returned record may be nil.
	UpdateRecord(ctx context.Context, zoneID, recordID string, draft NativeRecordDraft, scope model.CredentialScope) (*NativeRecord, error)
	// SetRecordStatus enables or disables a record.
	SetRecordStatus(ctx context.Context, zoneID, recordID string, enabled bool, scope model.CredentialScope) error
	// DeleteRecord deletes a record.
	DeleteRecord(ctx context.Context, zoneID, recordID string, scope model.CredentialScope) error
	// ListProviders returns the provider definitions.
	ListProviders(ctx context.Context) (ProvidersResponse, error)
	// ListCredentials returns the configured credentials.
	ListCredentials(ctx context.Context) (CredentialsResponse, error)
}

// TransportError wraps a network or HTTP failure. This layer only surfaces
// the message; retry and backoff belong to the transport.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
