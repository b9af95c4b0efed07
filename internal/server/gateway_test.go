/*
 * Gateway - unit tests
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
package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"multidns-console/internal/api"
	"multidns-console/internal/model"
	"multidns-console/internal/prefs"
	"multidns-console/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a minimal fake backend for gateway tests.
type stubClient struct {
	zones   []api.NativeZone
	records []api.NativeRecord
}

func (c *stubClient) ListProviders(ctx context.Context) (api.ProvidersResponse, error) {
	return api.ProvidersResponse{
		Envelope: api.Envelope{Success: true},
		Providers: []api.NativeProvider{
			{ID: "cloudflare", Name: "Cloudflare"},
			{ID: "aliyun", Name: "Aliyun"},
		},
	}, nil
}

func (c *stubClient) ListCredentials(ctx context.Context) (api.CredentialsResponse, error) {
	return api.CredentialsResponse{
		Envelope: api.Envelope{Success: true},
		Credentials: []api.NativeCredential{
			{ID: "1", Name: "cf", Provider: "cloudflare"},
			{ID: "2", Name: "ali", Provider: "aliyun"},
		},
	}, nil
}

func (c *stubClient) ListZones(ctx context.Context, scope model.CredentialScope, page, pageSize int) (api.ZonesResponse, error) {
	return api.ZonesResponse{
		Envelope: api.Envelope{Success: true},
		Zones:    c.zones,
		Total:    len(c.zones),
	}, nil
}

func (c *stubClient) GetZone(ctx context.Context, zoneID string, scope model.CredentialScope) (api.ZoneResponse, error) {
	return api.ZoneResponse{Envelope: api.Envelope{Success: true}, Zone: c.zones[0]}, nil
}

func (c *stubClient) RefreshZones(ctx context.Context, scope model.CredentialScope) error {
	return nil
}

func (c *stubClient) ListRecords(ctx context.Context, zoneID string, scope model.CredentialScope, page, pageSize int) (api.RecordsResponse, error) {
	return api.RecordsResponse{
		Envelope: api.Envelope{Success: true},
		Records:  c.records,
		Total:    len(c.records),
	}, nil
}

func (c *stubClient) ListLines(ctx context.Context, zoneID string, scope model.CredentialScope) (api.LinesResponse, error) {
	return api.LinesResponse{Envelope: api.Envelope{Success: true}}, nil
}

func (c *stubClient) GetMinTTL(ctx context.Context, zoneID string, scope model.CredentialScope) (int, error) {
	return 0, nil
}

func (c *stubClient) CreateRecord(ctx context.Context, zoneID string, draft api.NativeRecordDraft, scope model.CredentialScope) (*api.NativeRecord, error) {
	return &api.NativeRecord{ID: "r1", Type: draft.Type, Name: draft.Name, Value: draft.Value}, nil
}

func (c *stubClient) UpdateRecord(ctx context.Context, zoneID, recordID string, draft api.NativeRecordDraft, scope model.CredentialScope) (*api.NativeRecord, error) {
	return nil, nil
}

func (c *stubClient) SetRecordStatus(ctx context.Context, zoneID, recordID string, enabled bool, scope model.CredentialScope) error {
	return nil
}

func (c *stubClient) DeleteRecord(ctx context.Context, zoneID, recordID string, scope model.CredentialScope) error {
	return nil
}

// testGateway builds a loaded session behind a gateway test server.
func testGateway(t *testing.T) *httptest.Server {
	client := &stubClient{
		zones: []api.NativeZone{{ID: "z1", Name: "example.com"}},
		records: []api.NativeRecord{
			{ID: "r1", Type: "A", Name: "www", Value: "1.2.3.4"},
		},
	}
	s := session.New(client, prefs.NewMemoryStore())
	require.NoError(t, s.Load(context.Background()))

	srv := httptest.NewServer(NewGateway(s).Router())
	t.Cleanup(srv.Close)
	return srv
}

// doRequest issues a request and returns the status code and body.
func doRequest(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(out)
}

func Test_Gateway(t *testing.T) {
	type testCase struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   []string
		excludedBody   []string
	}

	run := func(t *testing.T, tc testCase) {
		srv := testGateway(t)
		status, body := doRequest(t, srv, tc.method, tc.path, tc.body)
		assert.Equal(t, tc.expectedStatus, status)
		for _, fragment := range tc.expectedBody {
			assert.Contains(t, body, fragment)
		}
		for _, fragment := range tc.excludedBody {
			assert.NotContains(t, body, fragment)
		}
	}

	testCases := []testCase{
		{
			name:           "state reports the ready selection",
			method:         http.MethodGet,
			path:           "/state",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"state":"ready"`, `"provider":"cloudflare"`, `"credential":"1"`},
		},
		{
			name:           "provider switch re-derives the credential",
			method:         http.MethodPut,
			path:           "/selection/provider",
			body:           `{"provider":"aliyun"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"provider":"aliyun"`, `"credential":"2"`},
		},
		{
			name:           "provider switch with a broken body",
			method:         http.MethodPut,
			path:           "/selection/provider",
			body:           `{"provider":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"error decoding request body"},
		},
		{
			name:           "unknown provider is rejected",
			method:         http.MethodPut,
			path:           "/selection/provider",
			body:           `{"provider":"gandi"}`,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "credentials are listed across providers",
			method:         http.MethodGet,
			path:           "/credentials",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"name":"cf"`, `"name":"ali"`},
		},
		{
			name:           "credentials can be filtered by provider",
			method:         http.MethodGet,
			path:           "/credentials?provider=aliyun",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"name":"ali"`},
			excludedBody:   []string{`"name":"cf"`},
		},
		{
			name:           "zones are listed",
			method:         http.MethodGet,
			path:           "/zones",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"name":"example.com"`},
		},
		{
			name:           "zone view aggregates records",
			method:         http.MethodGet,
			path:           "/zones/z1/view",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"zoneId":"z1"`, `"content":"1.2.3.4"`},
		},
		{
			name:           "record creation echoes the record",
			method:         http.MethodPost,
			path:           "/zones/z1/records",
			body:           `{"type":"A","name":"www","content":"5.6.7.8"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   []string{`"content":"5.6.7.8"`},
		},
		{
			name:           "invalid record content is rejected",
			method:         http.MethodPost,
			path:           "/zones/z1/records",
			body:           `{"type":"A","name":"www","content":"not-an-ip"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   []string{"invalid content"},
		},
		{
			name:           "status toggle without the capability is rejected",
			method:         http.MethodPut,
			path:           "/zones/z1/records/r1/status",
			body:           `{"enabled":false}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   []string{"does not support"},
		},
		{
			name:           "record deletion",
			method:         http.MethodDelete,
			path:           "/zones/z1/records/r1",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "form options report the legal choices",
			method:         http.MethodGet,
			path:           "/zones/z1/form-options?type=A&ttl=300",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"recordType":"A"`, `"ttl":300`, `"showProxied":true`},
		},
		{
			name:           "page size defaults",
			method:         http.MethodGet,
			path:           "/prefs/page-size",
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"pageSize":20`},
		},
		{
			name:           "tiny page size is rejected",
			method:         http.MethodPut,
			path:           "/prefs/page-size",
			body:           `{"pageSize":5}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}
