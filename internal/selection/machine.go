/*
 * Selection state machine - tracks the active provider and credential.
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

package selection

import (
	"fmt"
	"sync"

	"multidns-console/internal/directory"
	"multidns-console/internal/model"
	"multidns-console/internal/prefs"

	log "github.com/sirupsen/logrus"
)

// State is the lifecycle state of the selection machine.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateError
)

// String renders the state for logging.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Machine owns the active (provider, credential) selection. It is the only
// component that mutates it; everything else reads through Current. Every
// transition into the ready state persists the selection.
type Machine struct {
	m     sync.Mutex
	store prefs.Store

	state     State
	lastError string

	providers []model.Provider
	dir       *directory.Directory

	provider   model.ProviderID
	credential model.CredentialScope
}

// NewMachine creates a machine backed by the given preference store.
func NewMachine(store prefs.Store) *Machine {
	return &Machine{
		store: store,
		dir:   directory.New(nil),
	}
}

// BeginLoad moves the machine to the loading state. Any state can be forced
// back to loading via an explicit refresh.
func (s *Machine) BeginLoad() {
	s.m.Lock()
	defer s.m.Unlock()
	s.state = StateLoading
	s.lastError = ""
}

// FailLoad moves the machine to the error state with a message.
func (s *Machine) FailLoad(err error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.state = StateError
	s.lastError = err.Error()
	log.Errorf("Selection load failed: %v", err)
}

// CompleteLoad installs the fetched provider and credential lists and
// derives the initial selection: a persisted provider wins if it still has
// credentials, else the first provider in display order that has any, else
// none. The credential follows the persisted id when it still belongs to
// the chosen provider, else the single/multiple/zero rule.
func (s *Machine) CompleteLoad(providers []model.Provider, credentials []model.Credential) {
	s.m.Lock()
	defer s.m.Unlock()

	s.providers = providers
	s.dir = directory.New(credentials)

	provider := s.initialProvider()
	credential := s.initialCredential(provider)

	s.provider = provider
	s.credential = credential
	s.state = StateReady
	s.persistLocked()

	log.Debugf("Selection ready: provider=%s credential=%s", provider, credential)
}

// initialProvider picks the provider for a fresh load. Callers hold the
// lock.
func (s *Machine) initialProvider() model.ProviderID {
	if raw, ok := s.store.Provider(); ok {
		persisted := model.NormalizeProvider(model.ProviderID(raw))
		if s.hasProvider(persisted) && s.dir.CountByProvider(persisted) > 0 {
			return persisted
		}
	}
	for _, p := range model.ProviderDisplayOrder() {
		if s.hasProvider(p) && s.dir.CountByProvider(p) > 0 {
			return p
		}
	}
	return ""
}

// initialCredential derives the credential for a freshly chosen provider,
// honoring a persisted id when it still belongs to it. Callers hold the
// lock.
func (s *Machine) initialCredential(provider model.ProviderID) model.CredentialScope {
	if provider == "" {
		return model.AllCredentials()
	}
	if raw, ok := s.store.Credential(); ok {
		if scope, valid := model.ParseScope(raw); valid {
			if id, concrete := scope.ID(); concrete && s.dir.Owns(provider, id) {
				return scope
			}
		}
	}
	return s.deriveCredential(provider)
}

// deriveCredential applies the single/multiple/zero rule: exactly one
// credential auto-selects it, anything else yields the aggregate scope.
// Callers hold the lock.
func (s *Machine) deriveCredential(provider model.ProviderID) model.CredentialScope {
	owned := s.dir.ListByProvider(provider)
	if len(owned) == 1 {
		return model.OneCredential(owned[0].ID)
	}
	return model.AllCredentials()
}

// hasProvider checks membership in the fetched provider list. Callers hold
// the lock.
func (s *Machine) hasProvider(p model.ProviderID) bool {
	for _, candidate := range s.providers {
		if model.NormalizeProvider(candidate.ID) == p {
			return true
		}
	}
	return false
}

// persistLocked writes the current selection to the preference store.
// Callers hold the lock.
func (s *Machine) persistLocked() {
	if s.provider == "" {
		if err := s.store.ClearSelection(); err != nil {
			log.Warnf("Could not clear persisted selection: %v", err)
		}
		return
	}
	if err := s.store.SetProvider(string(s.provider)); err != nil {
		log.Warnf("Could not persist provider selection: %v", err)
	}
	if err := s.store.SetCredential(s.credential.String()); err != nil {
		log.Warnf("Could not persist credential selection: %v", err)
	}
}

// SelectProvider switches the active provider and re-derives the credential
// per the single/multiple/zero rule. An explicit user action always wins
// over persisted state, so the persisted credential is ignored. Selecting
// the empty provider clears both persisted keys.
func (s *Machine) SelectProvider(p model.ProviderID) error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.state != StateReady {
		return fmt.Errorf("selection not ready: state is %s", s.state)
	}

	if p == "" {
		s.provider = ""
		s.credential = model.AllCredentials()
		s.persistLocked()
		return nil
	}

	p = model.NormalizeProvider(p)
	if !model.KnownProvider(p) || !s.hasProvider(p) {
		return fmt.Errorf("unknown provider %q", p)
	}

	s.provider = p
	s.credential = s.deriveCredential(p)
	s.persistLocked()
	return nil
}

// SelectCredential switches the active credential scope. Raw values are the
// literal "all" or a stringified integer id; an id that does not belong to
// the active provider is a state inconsistency and silently falls back to
// the derived default.
func (s *Machine) SelectCredential(raw string) error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.state != StateReady {
		return fmt.Errorf("selection not ready: state is %s", s.state)
	}

	scope, valid := model.ParseScope(raw)
	if valid {
		if id, concrete := scope.ID(); concrete && !s.dir.Owns(s.provider, id) {
			valid = false
		}
	}
	if !valid {
		log.Debugf("Credential %q does not belong to provider %s, falling back", raw, s.provider)
		scope = s.deriveCredential(s.provider)
	}

	s.credential = scope
	s.persistLocked()
	return nil
}

// ReplaceCredentials installs a refreshed credential snapshot and re-derives
// a valid selection from it: a concrete credential survives when it still
// belongs to the current provider, while the aggregate scope is re-derived
// per the single/multiple/zero rule, so a directory that shrinks or grows
// to exactly one account auto-selects it.
func (s *Machine) ReplaceCredentials(credentials []model.Credential) {
	s.m.Lock()
	defer s.m.Unlock()

	s.dir = directory.New(credentials)
	if s.state != StateReady || s.provider == "" {
		return
	}
	if id, concrete := s.credential.ID(); concrete {
		if !s.dir.Owns(s.provider, id) {
			s.credential = s.deriveCredential(s.provider)
			s.persistLocked()
		}
		return
	}
	if derived := s.deriveCredential(s.provider); derived != s.credential {
		s.credential = derived
		s.persistLocked()
	}
}

// Current returns the machine state and the active selection.
func (s *Machine) Current() (State, model.ProviderID, model.CredentialScope) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.state, s.provider, s.credential
}

// LastError returns the message of the load failure, if any.
func (s *Machine) LastError() string {
	s.m.Lock()
	defer s.m.Unlock()
	return s.lastError
}

// Providers returns the fetched provider list.
func (s *Machine) Providers() []model.Provider {
	s.m.Lock()
	defer s.m.Unlock()
	out := make([]model.Provider, len(s.providers))
	copy(out, s.providers)
	return out
}

// Directory returns the current credential directory snapshot.
func (s *Machine) Directory() *directory.Directory {
	s.m.Lock()
	defer s.m.Unlock()
	return s.dir
}
