/*
 * Session - the owned context tying selection, listing, normalization and
 * capability gating together.
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
	"context"
	"fmt"
	"sync"

	"multidns-console/internal/api"
	"multidns-console/internal/capability"
	"multidns-console/internal/fieldgate"
	"multidns-console/internal/metrics"
	"multidns-console/internal/model"
	"multidns-console/internal/normalize"
	"multidns-console/internal/pager"
	"multidns-console/internal/prefs"
	"multidns-console/internal/selection"

	log "github.com/sirupsen/logrus"
)

const (
	// recordPageSize is the fixed page size for record listings.
	recordPageSize = 500
	// zonePageSize is the fixed page size for zone listings.
	zonePageSize = 100
)

// listKey identifies an in-flight listing by the (zone, credential scope)
// pair that issued it. Results whose key no longer matches the active
// selection are dropped.
type listKey struct {
	zoneID string
	scope  string
}

// ZoneList is an aggregated zone listing.
type ZoneList struct {
	Zones     []model.Zone
	Envelope  api.Envelope
	Truncated bool
	// Stale is set when the selection changed while the listing was in
	// flight; the content must then be discarded by the caller.
	Stale bool
}

// RecordView is the aggregated, normalized state of one zone: its records,
// its routing lines and its minimum TTL, plus the first page's response
// envelope with the full item list substituted in.
type RecordView struct {
	ZoneID       string
	Records      []model.Record
	Lines        []model.Line
	MinTTL       int
	Truncated    bool
	Envelope     api.Envelope
	Capabilities *api.ZoneCapabilities
}

// Session owns the in-memory state of one console session. Selection is
// mutated only through the embedded machine; the record view is replaced
// wholesale by refreshes and invalidated by mutations.
type Session struct {
	client  api.Client
	machine *selection.Machine
	store   prefs.Store

	m          sync.Mutex
	activeZone string
	view       RecordView
	viewValid  bool
}

// New creates a session over a backend client and a preference store.
func New(client api.Client, store prefs.Store) *Session {
	return &Session{
		client:  client,
		machine: selection.NewMachine(store),
		store:   store,
	}
}

// Machine exposes the selection state machine.
func (s *Session) Machine() *selection.Machine {
	return s.machine
}

// Load fetches the provider and credential lists concurrently and brings
// the selection machine to the ready state. Any state can be forced back
// through here by an explicit refresh request.
func (s *Session) Load(ctx context.Context) error {
	s.machine.BeginLoad()

	var (
		wg          sync.WaitGroup
		providers   api.ProvidersResponse
		credentials api.CredentialsResponse
		errProv     error
		errCred     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		providers, errProv = s.client.ListProviders(ctx)
	}()
	go func() {
		defer wg.Done()
		credentials, errCred = s.client.ListCredentials(ctx)
	}()
	wg.Wait()

	if errProv != nil {
		s.machine.FailLoad(errProv)
		return errProv
	}
	if errCred != nil {
		s.machine.FailLoad(errCred)
		return errCred
	}

	s.machine.CompleteLoad(
		normalize.GetProviderArray(providers.Providers),
		normalize.GetCredentialArray(credentials.Credentials),
	)
	s.invalidateView()
	return nil
}

// ReloadCredentials refreshes the credential directory and re-derives the
// selection from it.
func (s *Session) ReloadCredentials(ctx context.Context) error {
	credentials, err := s.client.ListCredentials(ctx)
	if err != nil {
		return err
	}
	s.machine.ReplaceCredentials(normalize.GetCredentialArray(credentials.Credentials))
	s.invalidateView()
	return nil
}

// SelectProvider switches the active provider and drops any cached view.
func (s *Session) SelectProvider(p model.ProviderID) error {
	if err := s.machine.SelectProvider(p); err != nil {
		return err
	}
	s.invalidateView()
	return nil
}

// SelectCredential switches the active credential scope and drops any
// cached view.
func (s *Session) SelectCredential(raw string) error {
	if err := s.machine.SelectCredential(raw); err != nil {
		return err
	}
	s.invalidateView()
	return nil
}

// currentScope returns the active selection when the machine is ready.
func (s *Session) currentScope() (model.ProviderID, model.CredentialScope, error) {
	state, provider, credential := s.machine.Current()
	if state != selection.StateReady {
		return "", model.CredentialScope{}, &StateInconsistency{Subject: "selection is " + state.String()}
	}
	return provider, credential, nil
}

// invalidateView drops the cached record view.
func (s *Session) invalidateView() {
	s.m.Lock()
	s.viewValid = false
	s.m.Unlock()
}

// Zones drains the zone listing for the active scope. A result whose scope
// no longer matches the active selection is flagged stale and must be
// discarded by the caller.
func (s *Session) Zones(ctx context.Context) (ZoneList, error) {
	_, scope, err := s.currentScope()
	if err != nil {
		return ZoneList{}, err
	}

	var envelope api.Envelope
	fetch := func(ctx context.Context, page, pageSize int) (pager.Page[api.NativeZone], error) {
		resp, err := s.client.ListZones(ctx, scope, page, pageSize)
		if err != nil {
			return pager.Page[api.NativeZone]{}, err
		}
		if page == 1 {
			envelope = resp.Envelope
		}
		return pager.Page[api.NativeZone]{Items: resp.Zones, Total: resp.Total}, nil
	}

	result, err := pager.Drain(ctx, fetch, zonePageSize)
	if err != nil {
		return ZoneList{}, err
	}
	if result.Truncated {
		log.Warnf("Zone listing for scope %s cut off at the page ceiling.", scope)
		metrics.GetOpenMetricsInstance().IncTruncatedListingsTotal("zones")
	}

	if _, current, err := s.currentScope(); err != nil || current.String() != scope.String() {
		log.Debugf("Dropping zone listing for scope %s: selection moved on.", scope)
		metrics.GetOpenMetricsInstance().IncStaleResultsTotal()
		return ZoneList{Stale: true}, nil
	}

	return ZoneList{
		Zones:     normalize.GetZoneArray(result.Items, scope),
		Envelope:  envelope,
		Truncated: result.Truncated,
	}, nil
}

// GetZone returns a single zone for the active scope.
func (s *Session) GetZone(ctx context.Context, zoneID string) (model.Zone, error) {
	_, scope, err := s.currentScope()
	if err != nil {
		return model.Zone{}, err
	}
	resp, err := s.client.GetZone(ctx, zoneID, scope)
	if err != nil {
		return model.Zone{}, err
	}
	return normalize.GetZone(resp.Zone, scope), nil
}

// RefreshZones asks the backend to re-pull zones from the providers.
func (s *Session) RefreshZones(ctx context.Context) error {
	_, scope, err := s.currentScope()
	if err != nil {
		return err
	}
	return s.client.RefreshZones(ctx, scope)
}

// drainRecords drains the record listing of one zone, preserving the first
// page's envelope and capability payload.
func (s *Session) drainRecords(ctx context.Context, zoneID string, scope model.CredentialScope) (RecordView, error) {
	view := RecordView{ZoneID: zoneID}

	fetch := func(ctx context.Context, page, pageSize int) (pager.Page[api.NativeRecord], error) {
		resp, err := s.client.ListRecords(ctx, zoneID, scope, page, pageSize)
		if err != nil {
			return pager.Page[api.NativeRecord]{}, err
		}
		if page == 1 {
			view.Envelope = resp.Envelope
			view.Capabilities = resp.Capabilities
		}
		return pager.Page[api.NativeRecord]{Items: resp.Records, Total: resp.Total}, nil
	}

	result, err := pager.Drain(ctx, fetch, recordPageSize)
	if err != nil {
		return view, err
	}
	if result.Truncated {
		log.Warnf("Record listing for zone %s cut off at the page ceiling.", zoneID)
		metrics.GetOpenMetricsInstance().IncTruncatedListingsTotal("records")
	}

	view.Records = normalize.GetRecordArray(result.Items)
	view.Truncated = result.Truncated
	return view, nil
}

// Lines fetches the routing lines of a zone for the active scope.
func (s *Session) Lines(ctx context.Context, zoneID string) ([]model.Line, error) {
	_, scope, err := s.currentScope()
	if err != nil {
		return nil, err
	}
	resp, err := s.client.ListLines(ctx, zoneID, scope)
	if err != nil {
		return nil, err
	}
	return normalize.GetLineArray(resp.Lines), nil
}

// ActivateZone makes a zone the active one and loads its view.
func (s *Session) ActivateZone(ctx context.Context, zoneID string) (RecordView, error) {
	s.m.Lock()
	s.activeZone = zoneID
	s.viewValid = false
	s.m.Unlock()

	return s.RefreshAll(ctx)
}

// RefreshAll re-issues the record, line and minimum-TTL fetches for the
// active zone concurrently and settles once all three have finished. The
// assembled view is installed only when the (zone, scope) key still matches
// the active selection; otherwise it is dropped silently and the previous
// view is returned.
func (s *Session) RefreshAll(ctx context.Context) (RecordView, error) {
	_, scope, err := s.currentScope()
	if err != nil {
		return RecordView{}, err
	}

	s.m.Lock()
	zoneID := s.activeZone
	s.m.Unlock()
	if zoneID == "" {
		return RecordView{}, &StateInconsistency{Subject: "no active zone"}
	}
	issued := listKey{zoneID: zoneID, scope: scope.String()}

	var (
		wg      sync.WaitGroup
		view    RecordView
		lines   api.LinesResponse
		minTTL  int
		errRec  error
		errLine error
		errTTL  error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		view, errRec = s.drainRecords(ctx, issued.zoneID, scope)
	}()
	go func() {
		defer wg.Done()
		lines, errLine = s.client.ListLines(ctx, issued.zoneID, scope)
	}()
	go func() {
		defer wg.Done()
		minTTL, errTTL = s.client.GetMinTTL(ctx, issued.zoneID, scope)
	}()
	wg.Wait()

	for _, err := range []error{errRec, errLine, errTTL} {
		if err != nil {
			return RecordView{}, err
		}
	}

	view.Lines = normalize.GetLineArray(lines.Lines)
	view.MinTTL = minTTL
	if view.Capabilities != nil && view.Capabilities.MinTTL > view.MinTTL {
		view.MinTTL = view.Capabilities.MinTTL
	}

	current := listKey{}
	if _, now, err := s.currentScope(); err == nil {
		current.scope = now.String()
	}

	s.m.Lock()
	defer s.m.Unlock()
	current.zoneID = s.activeZone
	if current != issued {
		log.Debugf("Dropping record view for zone %s scope %s: selection moved on.", issued.zoneID, issued.scope)
		metrics.GetOpenMetricsInstance().IncStaleResultsTotal()
		return s.view, nil
	}
	s.view = view
	s.viewValid = true
	return view, nil
}

// View returns the cached record view and whether it is valid.
func (s *Session) View() (RecordView, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.view, s.viewValid
}

// gateContext assembles the field-gate context for the active selection and
// a zone, drawing line and minimum-TTL knowledge from the cached view when
// it covers that zone.
func (s *Session) gateContext(provider model.ProviderID, zoneID string) fieldgate.Context {
	gctx := fieldgate.Context{
		Provider:   provider,
		Capability: capability.For(provider),
	}
	s.m.Lock()
	if s.viewValid && s.view.ZoneID == zoneID {
		gctx.HasLines = len(s.view.Lines) > 0
		gctx.MinTTL = s.view.MinTTL
	}
	s.m.Unlock()
	return gctx
}

// gateDraft validates a draft and strips every field the provider must not
// receive, returning the outbound wire payload.
func (s *Session) gateDraft(provider model.ProviderID, zoneID string, draft model.RecordDraft) (api.NativeRecordDraft, error) {
	if err := validateDraft(draft); err != nil {
		return api.NativeRecordDraft{}, err
	}

	gctx := s.gateContext(provider, zoneID)
	supported := false
	for _, t := range gctx.Capability.RecordTypes {
		if t == draft.Type {
			supported = true
			break
		}
	}
	if !supported {
		return api.NativeRecordDraft{}, &CapabilityViolation{Provider: provider, Subject: "record type " + draft.Type}
	}

	return normalize.GetNativeDraft(fieldgate.FilterDraft(gctx, draft)), nil
}

// invalidateZone drops the cached view when it covers the mutated zone, so
// the next read goes back to the backend.
func (s *Session) invalidateZone(zoneID string) {
	s.m.Lock()
	if s.view.ZoneID == zoneID {
		s.viewValid = false
	}
	s.m.Unlock()
}

// CreateRecord validates, gates and submits a new record. The returned
// record is nil when the backend sends no body back; callers must then rely
// on the listing refresh the invalidation forces.
func (s *Session) CreateRecord(ctx context.Context, zoneID string, draft model.RecordDraft) (*model.Record, error) {
	provider, scope, err := s.currentScope()
	if err != nil {
		return nil, err
	}
	native, err := s.gateDraft(provider, zoneID, draft)
	if err != nil {
		return nil, err
	}
	created, err := s.client.CreateRecord(ctx, zoneID, native, scope)
	if err != nil {
		return nil, err
	}
	s.invalidateZone(zoneID)
	return normalize.GetRecordPtr(created), nil
}

// UpdateRecord validates, gates and submits a record update. Absent draft
// fields are not sent and stay unchanged upstream.
func (s *Session) UpdateRecord(ctx context.Context, zoneID, recordID string, draft model.RecordDraft) (*model.Record, error) {
	provider, scope, err := s.currentScope()
	if err != nil {
		return nil, err
	}
	native, err := s.gateDraft(provider, zoneID, draft)
	if err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateRecord(ctx, zoneID, recordID, native, scope)
	if err != nil {
		return nil, err
	}
	s.invalidateZone(zoneID)
	return normalize.GetRecordPtr(updated), nil
}

// SetRecordStatus toggles a record on providers that support disabling.
func (s *Session) SetRecordStatus(ctx context.Context, zoneID, recordID string, enabled bool) error {
	provider, scope, err := s.currentScope()
	if err != nil {
		return err
	}
	if !capability.For(provider).SupportsStatus {
		return &CapabilityViolation{Provider: provider, Subject: "record status toggling"}
	}
	if err := s.client.SetRecordStatus(ctx, zoneID, recordID, enabled, scope); err != nil {
		return err
	}
	s.invalidateZone(zoneID)
	return nil
}

// DeleteRecord deletes a record.
func (s *Session) DeleteRecord(ctx context.Context, zoneID, recordID string) error {
	_, scope, err := s.currentScope()
	if err != nil {
		return err
	}
	if err := s.client.DeleteRecord(ctx, zoneID, recordID, scope); err != nil {
		return err
	}
	s.invalidateZone(zoneID)
	return nil
}

// FormOptions are the legal editing choices for the active provider/zone.
type FormOptions struct {
	RecordTypes   []string
	RecordType    string
	TTLs          []int
	TTL           int
	ShowProxied   bool
	ShowWeight    bool
	ShowLine      bool
	ShowRemark    bool
	ShowPriority  bool
	StatusToggles bool
}

// FormOptionsFor derives the legal form choices for a zone given the
// current type and TTL selections. It never fails; it degrades to safe
// defaults instead.
func (s *Session) FormOptionsFor(zoneID, currentType string, currentTTL int) FormOptions {
	_, provider, _ := s.machine.Current()
	gctx := s.gateContext(provider, zoneID)

	types, effectiveType := fieldgate.RecordTypeOptions(gctx, currentType)
	ttls, effectiveTTL := fieldgate.TTLOptions(gctx, currentTTL)

	isCloudflare := model.NormalizeProvider(provider) == model.ProviderCloudflare
	return FormOptions{
		RecordTypes:   types,
		RecordType:    effectiveType,
		TTLs:          ttls,
		TTL:           effectiveTTL,
		ShowProxied:   isCloudflare,
		ShowWeight:    gctx.Capability.SupportsWeight,
		ShowLine:      gctx.Capability.SupportsLine && gctx.HasLines,
		ShowRemark:    gctx.Capability.SupportsRemark,
		ShowPriority:  effectiveType == "MX" || effectiveType == "SRV",
		StatusToggles: gctx.Capability.SupportsStatus,
	}
}

// PageSize returns the persisted page-size preference.
func (s *Session) PageSize() int {
	size, ok := s.store.PageSize()
	return prefs.NormalizePageSize(size, ok)
}

// SetPageSize persists the page-size preference.
func (s *Session) SetPageSize(size int) error {
	if size < prefs.MinPageSize {
		return &ValidationError{Field: "pageSize", Reason: fmt.Sprintf("must be at least %d", prefs.MinPageSize)}
	}
	return s.store.SetPageSize(size)
}
