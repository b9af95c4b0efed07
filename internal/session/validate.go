/*
 * Record content validation - basic type-specific format checks.
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

package session

import (
	"net/netip"
	"regexp"
	"strings"

	"multidns-console/internal/model"
)

// hostnamePattern accepts a dotted DNS name, optionally fully qualified.
var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*\.?$`)

// validateDraft runs the basic content checks for a draft. Anything beyond
// these stays the backend's business.
func validateDraft(draft model.RecordDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	content := strings.TrimSpace(draft.Content)
	if content == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	switch draft.Type {
	case "A":
		addr, err := netip.ParseAddr(content)
		if err != nil || !addr.Is4() {
			return &ValidationError{Field: "content", Reason: "must be an IPv4 address"}
		}
	case "AAAA":
		addr, err := netip.ParseAddr(content)
		if err != nil || !addr.Is6() || addr.Is4In6() {
			return &ValidationError{Field: "content", Reason: "must be an IPv6 address"}
		}
	case "CNAME", "NS", "MX":
		if !hostnamePattern.MatchString(content) {
			return &ValidationError{Field: "content", Reason: "must be a hostname"}
		}
	}

	if draft.TTL != nil && *draft.TTL < 0 {
		return &ValidationError{Field: "ttl", Reason: "must not be negative"}
	}
	return nil
}
