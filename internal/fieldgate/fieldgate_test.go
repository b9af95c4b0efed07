/*
 * Field gate - unit tests
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

package fieldgate

import (
	"testing"

	"multidns-console/internal/model"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// fullDraft returns a draft carrying every optional field.
func fullDraft(recordType string) model.RecordDraft {
	return model.RecordDraft{
		Type:     recordType,
		Name:     "www",
		Content:  "1.2.3.4",
		TTL:      intPtr(600),
		Proxied:  boolPtr(true),
		Priority: intPtr(10),
		Weight:   intPtr(10),
		Line:     strPtr("default"),
		Remark:   strPtr("x"),
	}
}

// Test_FilterDraft tests the independent field rules combined.
func Test_FilterDraft(t *testing.T) {
	type testCase struct {
		name       string
		ctx        Context
		draft      model.RecordDraft
		keepFields []string
	}

	has := func(fields []string, f string) bool {
		for _, candidate := range fields {
			if candidate == f {
				return true
			}
		}
		return false
	}

	run := func(t *testing.T, tc testCase) {
		filtered := FilterDraft(tc.ctx, tc.draft)
		assert.Equal(t, has(tc.keepFields, "proxied"), filtered.Proxied != nil, "proxied")
		assert.Equal(t, has(tc.keepFields, "priority"), filtered.Priority != nil, "priority")
		assert.Equal(t, has(tc.keepFields, "weight"), filtered.Weight != nil, "weight")
		assert.Equal(t, has(tc.keepFields, "line"), filtered.Line != nil, "line")
		assert.Equal(t, has(tc.keepFields, "remark"), filtered.Remark != nil, "remark")
	}

	testCases := []testCase{
		{
			name: "Weight-only provider keeps only weight",
			ctx: Context{
				Provider:   model.ProviderAliyun,
				Capability: model.Capability{SupportsWeight: true},
				HasLines:   true,
			},
			draft:      fullDraft("A"),
			keepFields: []string{"weight"},
		},
		{
			name: "Cloudflare always keeps proxied",
			ctx: Context{
				Provider:   model.ProviderCloudflare,
				Capability: model.Capability{},
			},
			draft:      fullDraft("A"),
			keepFields: []string{"proxied"},
		},
		{
			name: "Priority kept for MX",
			ctx: Context{
				Provider:   model.ProviderHuawei,
				Capability: model.Capability{SupportsWeight: true, SupportsLine: true, SupportsRemark: true},
				HasLines:   true,
			},
			draft:      fullDraft("MX"),
			keepFields: []string{"priority", "weight", "line", "remark"},
		},
		{
			name: "Line dropped when the zone has no lines",
			ctx: Context{
				Provider:   model.ProviderTencent,
				Capability: model.Capability{SupportsLine: true, SupportsRemark: true},
				HasLines:   false,
			},
			draft:      fullDraft("A"),
			keepFields: []string{"remark"},
		},
		{
			name: "Everything stripped on a capability-less provider",
			ctx: Context{
				Provider:   model.ProviderSpaceship,
				Capability: model.Capability{},
			},
			draft:      fullDraft("TXT"),
			keepFields: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

// Test_RecordTypeOptions tests type restriction and selection reset.
func Test_RecordTypeOptions(t *testing.T) {
	ctx := Context{Capability: model.Capability{RecordTypes: []string{"A", "CNAME", "TXT"}}}

	options, effective := RecordTypeOptions(ctx, "CNAME")
	assert.Equal(t, []string{"A", "CNAME", "TXT"}, options)
	assert.Equal(t, "CNAME", effective)

	_, effective = RecordTypeOptions(ctx, "SRV")
	assert.Equal(t, "A", effective)
}

// Test_TTLOptions tests the master-list filtering rules.
func Test_TTLOptions(t *testing.T) {
	type testCase struct {
		name              string
		ctx               Context
		current           int
		expectedOptions   []int
		expectedEffective int
	}

	run := func(t *testing.T, tc testCase) {
		options, effective := TTLOptions(tc.ctx, tc.current)
		assert.Equal(t, tc.expectedOptions, options)
		assert.Equal(t, tc.expectedEffective, effective)
	}

	testCases := []testCase{
		{
			name:              "Non-Cloudflare gets no automatic sentinel",
			ctx:               Context{Provider: model.ProviderAliyun},
			current:           600,
			expectedOptions:   []int{60, 300, 600, 900, 1800, 3600, 7200, 18000, 43200, 86400},
			expectedEffective: 600,
		},
		{
			name:              "Cloudflare keeps automatic regardless of minimum",
			ctx:               Context{Provider: model.ProviderCloudflare, MinTTL: 600},
			current:           TTLAutomatic,
			expectedOptions:   []int{TTLAutomatic, 600, 900, 1800, 3600, 7200, 18000, 43200, 86400},
			expectedEffective: TTLAutomatic,
		},
		{
			name:              "Minimum removes smaller options and automatic elsewhere",
			ctx:               Context{Provider: model.ProviderTencent, MinTTL: 600},
			current:           60,
			expectedOptions:   []int{600, 900, 1800, 3600, 7200, 18000, 43200, 86400},
			expectedEffective: 600,
		},
		{
			name:              "Minimum above the list yields one synthetic option",
			ctx:               Context{Provider: model.ProviderWest, MinTTL: 172800},
			current:           600,
			expectedOptions:   []int{172800},
			expectedEffective: 172800,
		},
		{
			name:              "Invalid current selection silently resets",
			ctx:               Context{Provider: model.ProviderBaidu, MinTTL: 300},
			current:           60,
			expectedOptions:   []int{300, 600, 900, 1800, 3600, 7200, 18000, 43200, 86400},
			expectedEffective: 300,
		},
		{
			name:              "Legacy identifier treated as its canonical provider",
			ctx:               Context{Provider: model.ProviderDNSPod},
			current:           TTLAutomatic,
			expectedOptions:   []int{60, 300, 600, 900, 1800, 3600, 7200, 18000, 43200, 86400},
			expectedEffective: 60,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}
