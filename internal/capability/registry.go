/*
 * Capability registry - static feature-support matrix per provider.
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

package capability

import "multidns-console/internal/model"

// defaultRecordTypes is the conservative record-type set used when a
// provider is unknown.
var defaultRecordTypes = []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS"}

// registry maps each canonical provider to its capability descriptor.
// Identifiers must be normalized before lookup; aliased identifiers have no
// entry of their own.
var registry = map[model.ProviderID]model.Capability{
	model.ProviderCloudflare: {
		SupportsRemark: true,
		RemarkMode:     model.RemarkInline,
		Paging:         model.PagingServer,
		RecordTypes:    []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS", "PTR"},
	},
	model.ProviderAliyun: {
		SupportsWeight: true,
		SupportsLine:   true,
		SupportsStatus: true,
		SupportsRemark: true,
		SupportsLogs:   true,
		RemarkMode:     model.RemarkSeparate,
		Paging:         model.PagingServer,
		RecordTypes:    []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS", "REDIRECT_URL", "FORWARD_URL"},
	},
	model.ProviderTencent: {
		SupportsWeight:     true,
		SupportsLine:       true,
		SupportsStatus:     true,
		SupportsRemark:     true,
		SupportsURLForward: true,
		SupportsLogs:       true,
		RemarkMode:         model.RemarkInline,
		Paging:             model.PagingServer,
		RequiresDomainID:   true,
		RecordTypes:        []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS", "SPF"},
	},
	model.ProviderHuawei: {
		SupportsWeight: true,
		SupportsLine:   true,
		SupportsStatus: true,
		SupportsRemark: true,
		RemarkMode:     model.RemarkInline,
		Paging:         model.PagingServer,
		RecordTypes:    []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS"},
	},
	model.ProviderBaidu: {
		SupportsStatus:   true,
		RemarkMode:       model.RemarkUnsupported,
		Paging:           model.PagingServer,
		RequiresDomainID: true,
		RecordTypes:      []string{"A", "AAAA", "CNAME", "MX", "TXT"},
	},
	model.ProviderWest: {
		SupportsLine:       true,
		SupportsStatus:     true,
		SupportsURLForward: true,
		RemarkMode:         model.RemarkUnsupported,
		Paging:             model.PagingServer,
		RequiresDomainID:   true,
		RecordTypes:        []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV"},
	},
	model.ProviderHuoshan: {
		SupportsWeight: true,
		SupportsLine:   true,
		SupportsStatus: true,
		SupportsRemark: true,
		SupportsLogs:   true,
		RemarkMode:     model.RemarkInline,
		Paging:         model.PagingServer,
		RecordTypes:    []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS"},
	},
	model.ProviderJDCloud: {
		SupportsWeight:   true,
		SupportsStatus:   true,
		RemarkMode:       model.RemarkUnsupported,
		Paging:           model.PagingServer,
		RequiresDomainID: true,
		RecordTypes:      []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS"},
	},
	model.ProviderDNSLA: {
		SupportsLine:       true,
		SupportsStatus:     true,
		SupportsRemark:     true,
		SupportsURLForward: true,
		RemarkMode:         model.RemarkInline,
		Paging:             model.PagingServer,
		RequiresDomainID:   true,
		RecordTypes:        []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS"},
	},
	model.ProviderNameSilo: {
		SupportsURLForward: true,
		RemarkMode:         model.RemarkUnsupported,
		Paging:             model.PagingClient,
		RecordTypes:        []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA"},
	},
	model.ProviderPowerDNS: {
		SupportsStatus: true,
		SupportsRemark: true,
		RemarkMode:     model.RemarkInline,
		Paging:         model.PagingClient,
		RecordTypes:    []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS", "SOA", "PTR"},
	},
	model.ProviderSpaceship: {
		RemarkMode:  model.RemarkUnsupported,
		Paging:      model.PagingClient,
		RecordTypes: []string{"A", "AAAA", "CNAME", "MX", "TXT", "SRV", "CAA", "NS"},
	},
}

// For returns the capability descriptor for a provider. Unknown providers
// fail closed: every optional capability is disabled and the conservative
// default record-type set is returned so that callers degrade gracefully.
func For(p model.ProviderID) model.Capability {
	if c, ok := registry[model.NormalizeProvider(p)]; ok {
		return cloneCapability(c)
	}
	return model.Capability{
		RemarkMode:  model.RemarkUnsupported,
		Paging:      model.PagingServer,
		RecordTypes: cloneTypes(defaultRecordTypes),
	}
}

// cloneCapability copies a descriptor so callers cannot mutate the registry.
func cloneCapability(c model.Capability) model.Capability {
	c.RecordTypes = cloneTypes(c.RecordTypes)
	return c
}

func cloneTypes(types []string) []string {
	out := make([]string, len(types))
	copy(out, types)
	return out
}
