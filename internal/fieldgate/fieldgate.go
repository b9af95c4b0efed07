/*
 * Field gate - restricts record fields and form choices to what the active
 * provider supports, before anything reaches the network.
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

import "multidns-console/internal/model"

// TTLAutomatic is the sentinel TTL meaning "let the provider choose". Only
// Cloudflare understands it; it is Cloudflare's own wire encoding.
const TTLAutomatic = 1

// masterTTLs is the fixed master list of TTL choices in seconds: automatic,
// 1/5/10/15/30 minutes, 1/2/5/12 hours, 1 day.
var masterTTLs = []int{TTLAutomatic, 60, 300, 600, 900, 1800, 3600, 7200, 18000, 43200, 86400}

// Context carries everything the gate needs to decide field legality.
type Context struct {
	Provider   model.ProviderID
	Capability model.Capability
	// HasLines reports whether at least one routing line exists for the
	// zone. The line field is only legal when it does.
	HasLines bool
	// MinTTL is the provider/zone minimum TTL in seconds, 0 when unknown.
	MinTTL int
}

// isCloudflare checks the provider identity. Proxying and the automatic TTL
// are Cloudflare product features, not capability flags.
func (c Context) isCloudflare() bool {
	return model.NormalizeProvider(c.Provider) == model.ProviderCloudflare
}

// allowsPriority reports whether the priority field applies to a type.
func allowsPriority(recordType string) bool {
	return recordType == "MX" || recordType == "SRV"
}

// FilterDraft strips every field the active provider must not receive. The
// rules are independent and combined; the result is always a submittable
// draft, never an error.
func FilterDraft(ctx Context, draft model.RecordDraft) model.RecordDraft {
	if !allowsPriority(draft.Type) {
		draft.Priority = nil
	}
	if !ctx.isCloudflare() {
		draft.Proxied = nil
	}
	if !ctx.Capability.SupportsWeight {
		draft.Weight = nil
	}
	if !ctx.Capability.SupportsLine || !ctx.HasLines {
		draft.Line = nil
	}
	if !ctx.Capability.SupportsRemark {
		draft.Remark = nil
	}
	return draft
}

// RecordTypeOptions returns the legal record-type choices and the effective
// selection. When the current selection is not offered, the first entry of
// the set becomes the selection.
func RecordTypeOptions(ctx Context, current string) ([]string, string) {
	options := ctx.Capability.RecordTypes
	for _, t := range options {
		if t == current {
			return options, current
		}
	}
	return options, options[0]
}

// TTLOptions returns the legal TTL choices and the effective selection.
// The automatic sentinel is offered only for Cloudflare and survives any
// minimum-TTL filtering there. A minimum greater than zero removes every
// option below it; when that eliminates everything, a single synthetic
// option equal to the minimum is produced. An invalid current selection is
// silently reset to the first remaining option.
func TTLOptions(ctx Context, current int) ([]int, int) {
	options := []int{}
	for _, ttl := range masterTTLs {
		if ttl == TTLAutomatic {
			if ctx.isCloudflare() {
				options = append(options, ttl)
			}
			continue
		}
		if ctx.MinTTL > 0 && ttl < ctx.MinTTL {
			continue
		}
		options = append(options, ttl)
	}

	if len(options) == 0 {
		if ctx.MinTTL > 0 {
			options = []int{ctx.MinTTL}
		} else {
			for _, ttl := range masterTTLs {
				if ttl == TTLAutomatic {
					continue
				}
				options = append(options, ttl)
			}
		}
	}

	for _, ttl := range options {
		if ttl == current {
			return options, current
		}
	}
	return options, options[0]
}
