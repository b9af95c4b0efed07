/*
 * Session error taxonomy.
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
	"fmt"

	"multidns-console/internal/model"
)

// ValidationError reports record content that fails a type-specific format
// check. It surfaces to the user at the point of the triggering action.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CapabilityViolation reports an attempt to submit something the active
// provider does not support. With the field gate applied before every
// submission it is never actually raised for optional fields; it remains
// for the cases the gate cannot absorb, such as an unsupported record type
// or a status toggle on a provider without one.
type CapabilityViolation struct {
	Provider model.ProviderID
	Subject  string
}

// Error implements the error interface.
func (e *CapabilityViolation) Error() string {
	return fmt.Sprintf("provider %s does not support %s", e.Provider, e.Subject)
}

// StateInconsistency reports persisted or cached state referring to an
// entity that no longer exists. It is recovered automatically and never
// surfaces to the user; the type exists so recovery paths can log a
// uniform message.
type StateInconsistency struct {
	Subject string
}

// Error implements the error interface.
func (e *StateInconsistency) Error() string {
	return fmt.Sprintf("stale state: %s", e.Subject)
}
