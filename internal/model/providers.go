/*
 * Provider identifiers and alias normalization.
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

// ProviderID identifies one DNS hosting backend.
type ProviderID string

const (
	ProviderCloudflare ProviderID = "cloudflare"
	ProviderAliyun     ProviderID = "aliyun"
	ProviderTencent    ProviderID = "tencent"
	ProviderHuawei     ProviderID = "huawei"
	ProviderBaidu      ProviderID = "baidu"
	ProviderWest       ProviderID = "west"
	ProviderHuoshan    ProviderID = "huoshan"
	ProviderJDCloud    ProviderID = "jdcloud"
	ProviderDNSLA      ProviderID = "dnsla"
	ProviderNameSilo   ProviderID = "namesilo"
	ProviderPowerDNS   ProviderID = "powerdns"
	ProviderSpaceship  ProviderID = "spaceship"

	// ProviderDNSPod is the legacy identifier for Tencent DNSPod. Accounts
	// stored under it are folded into ProviderTencent everywhere.
	ProviderDNSPod ProviderID = "dnspod"
)

// displayOrder is the fixed order in which providers are offered when no
// persisted selection applies.
var displayOrder = []ProviderID{
	ProviderCloudflare,
	ProviderAliyun,
	ProviderTencent,
	ProviderHuawei,
	ProviderBaidu,
	ProviderWest,
	ProviderHuoshan,
	ProviderJDCloud,
	ProviderDNSLA,
	ProviderNameSilo,
	ProviderPowerDNS,
	ProviderSpaceship,
}

// NormalizeProvider folds legacy identifier variants into their canonical
// counterpart. It must be applied before every comparison, lookup and
// persistence write involving a provider identifier.
func NormalizeProvider(p ProviderID) ProviderID {
	if p == ProviderDNSPod {
		return ProviderTencent
	}
	return p
}

// ProviderDisplayOrder returns the fixed provider display order.
func ProviderDisplayOrder() []ProviderID {
	out := make([]ProviderID, len(displayOrder))
	copy(out, displayOrder)
	return out
}

// KnownProvider reports whether p (after normalization) is one of the
// supported providers.
func KnownProvider(p ProviderID) bool {
	p = NormalizeProvider(p)
	for _, candidate := range displayOrder {
		if candidate == p {
			return true
		}
	}
	return false
}
