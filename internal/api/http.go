/*
 * HTTPClient - JSON-over-HTTP implementation of the backend client.
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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"multidns-console/internal/metrics"
	"multidns-console/internal/model"
)

const (
	actListZones       = "list_zones"
	actGetZone         = "get_zone"
	actRefreshZones    = "refresh_zones"
	actListRecords     = "list_records"
	actListLines       = "list_lines"
	actGetMinTTL       = "get_min_ttl"
	actCreateRecord    = "create_record"
	actUpdateRecord    = "update_record"
	actSetRecordStatus = "set_record_status"
	actDeleteRecord    = "delete_record"
	actListProviders   = "list_providers"
	actListCredentials = "list_credentials"
)

// HTTPClient talks to the backend over JSON/HTTP. Request signing, auth
// headers and retries are the caller-provided http.Client's business.
type HTTPClient struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewHTTPClient creates a client for the given base URL. A nil http.Client
// falls back to http.DefaultClient.
func NewHTTPClient(baseURL, token string, httpc *http.Client) *HTTPClient {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpc:   httpc,
	}
}

// scopedQuery builds the common listing query parameters.
func scopedQuery(scope model.CredentialScope) url.Values {
	q := url.Values{}
	if id, ok := scope.ID(); ok {
		q.Set("credential_id", strconv.FormatInt(id, 10))
	}
	return q
}

// pagedQuery adds pagination parameters to a scoped query.
func pagedQuery(scope model.CredentialScope, page, pageSize int) url.Values {
	q := scopedQuery(scope)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return q
}

// call performs one instrumented request and decodes the JSON body into out
// when out is non-nil.
func (c *HTTPClient) call(ctx context.Context, action, method, path string, query url.Values, body any, out any) error {
	m := metrics.GetOpenMetricsInstance()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: action, Err: err}
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &TransportError{Op: action, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		m.IncFailedApiCallsTotal(action)
		return &TransportError{Op: action, Err: err}
	}
	defer resp.Body.Close()
	m.AddApiDelayHist(action, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.IncFailedApiCallsTotal(action)
		return &TransportError{Op: action, Status: resp.StatusCode}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			m.IncFailedApiCallsTotal(action)
			return &TransportError{Op: action, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	m.IncSuccessfulApiCallsTotal(action)
	return nil
}

// ListZones returns one page of zones.
func (c *HTTPClient) ListZones(ctx context.Context, scope model.CredentialScope, page, pageSize int) (ZonesResponse, error) {
	var out ZonesResponse
	err := c.call(ctx, actListZones, http.MethodGet, "/zones", pagedQuery(scope, page, pageSize), nil, &out)
	return out, err
}

// GetZone returns a single zone.
func (c *HTTPClient) GetZone(ctx context.Context, zoneID string, scope model.CredentialScope) (ZoneResponse, error) {
	var out ZoneResponse
	err := c.call(ctx, actGetZone, http.MethodGet, "/zones/"+url.PathEscape(zoneID), scopedQuery(scope), nil, &out)
	return out, err
}

// RefreshZones asks the backend to re-pull zones from the providers.
func (c *HTTPClient) RefreshZones(ctx context.Context, scope model.CredentialScope) error {
	return c.call(ctx, actRefreshZones, http.MethodPost, "/zones/refresh", scopedQuery(scope), nil, nil)
}

// ListRecords returns one page of records for a zone.
func (c *HTTPClient) ListRecords(ctx context.Context, zoneID string, scope model.CredentialScope, page, pageSize int) (RecordsResponse, error) {
	var out RecordsResponse
	path := "/zones/" + url.PathEscape(zoneID) + "/records"
	err := c.call(ctx, actListRecords, http.MethodGet, path, pagedQuery(scope, page, pageSize), nil, &out)
	return out, err
}

// ListLines returns the routing lines available for a zone.
func (c *HTTPClient) ListLines(ctx context.Context, zoneID string, scope model.CredentialScope) (LinesResponse, error) {
	var out LinesResponse
	path := "/zones/" + url.PathEscape(zoneID) + "/lines"
	err := c.call(ctx, actListLines, http.MethodGet, path, scopedQuery(scope), nil, &out)
	return out, err
}

// GetMinTTL returns the minimum TTL for a zone, 0 when unknown.
func (c *HTTPClient) GetMinTTL(ctx context.Context, zoneID string, scope model.CredentialScope) (int, error) {
	var out MinTTLResponse
	path := "/zones/" + url.PathEscape(zoneID) + "/minttl"
	if err := c.call(ctx, actGetMinTTL, http.MethodGet, path, scopedQuery(scope), nil, &out); err != nil {
		return 0, err
	}
	return out.MinTTL, nil
}

// CreateRecord creates a record.
func (c *HTTPClient) CreateRecord(ctx context.Context, zoneID string, draft NativeRecordDraft, scope model.CredentialScope) (*NativeRecord, error) {
	var out RecordResponse
	path := "/zones/" + url.PathEscape(zoneID) + "/records"
	if err := c.call(ctx, actCreateRecord, http.MethodPost, path, scopedQuery(scope), draft, &out); err != nil {
		return nil, err
	}
	return out.Record, nil
}

// UpdateRecord updates a record.
func (c *HTTPClient) UpdateRecord(ctx context.Context, zoneID, recordID string, draft NativeRecordDraft, scope model.CredentialScope) (*NativeRecord, error) {
	var out RecordResponse
	path := "/zones/" + url.PathEscape(zoneID) + "/records/" + url.PathEscape(recordID)
	if err := c.call(ctx, actUpdateRecord, http.MethodPut, path, scopedQuery(scope), draft, &out); err != nil {
		return nil, err
	}
	return out.Record, nil
}

// SetRecordStatus enables or disables a record.
func (c *HTTPClient) SetRecordStatus(ctx context.Context, zoneID, recordID string, enabled bool, scope model.CredentialScope) error {
	path := "/zones/" + url.PathEscape(zoneID) + "/records/" + url.PathEscape(recordID) + "/status"
	payload := map[string]bool{"enabled": enabled}
	return c.call(ctx, actSetRecordStatus, http.MethodPut, path, scopedQuery(scope), payload, nil)
}

// DeleteRecord deletes a record.
func (c *HTTPClient) DeleteRecord(ctx context.Context, zoneID, recordID string, scope model.CredentialScope) error {
	path := "/zones/" + url.PathEscape(zoneID) + "/records/" + url.PathEscape(recordID)
	return c.call(ctx, actDeleteRecord, http.MethodDelete, path, scopedQuery(scope), nil, nil)
}

// ListProviders returns the provider definitions.
func (c *HTTPClient) ListProviders(ctx context.Context) (ProvidersResponse, error) {
	var out ProvidersResponse
	err := c.call(ctx, actListProviders, http.MethodGet, "/providers", nil, nil, &out)
	return out, err
}

// ListCredentials returns the configured credentials.
func (c *HTTPClient) ListCredentials(ctx context.Context) (CredentialsResponse, error) {
	var out CredentialsResponse
	err := c.call(ctx, actListCredentials, http.MethodGet, "/credentials", nil, nil, &out)
	return out, err
}
