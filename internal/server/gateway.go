/*
 * Gateway - REST surface of the console session.
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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"multidns-console/internal/api"
	"multidns-console/internal/model"
	"multidns-console/internal/session"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const (
	contentTypeHeader     = "Content-Type"
	contentTypeJSON       = "application/json"
	logFieldRequestPath   = "requestPath"
	logFieldRequestMethod = "requestMethod"
	logFieldError         = "error"
)

// Gateway exposes one console session over HTTP.
type Gateway struct {
	session *session.Session
}

// NewGateway creates a gateway over a session.
func NewGateway(s *session.Session) *Gateway {
	return &Gateway{session: s}
}

// Router builds the route table.
func (g *Gateway) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/state", g.State)
	r.Post("/load", g.Load)
	r.Put("/selection/provider", g.SelectProvider)
	r.Put("/selection/credential", g.SelectCredential)
	r.Get("/providers", g.Providers)
	r.Get("/credentials", g.Credentials)
	r.Get("/zones", g.Zones)
	r.Post("/zones/refresh", g.RefreshZones)
	r.Get("/zones/{zoneID}", g.Zone)
	r.Get("/zones/{zoneID}/view", g.ZoneView)
	r.Post("/view/refresh", g.RefreshView)
	r.Post("/zones/{zoneID}/records", g.CreateRecord)
	r.Put("/zones/{zoneID}/records/{recordID}", g.UpdateRecord)
	r.Delete("/zones/{zoneID}/records/{recordID}", g.DeleteRecord)
	r.Put("/zones/{zoneID}/records/{recordID}/status", g.SetRecordStatus)
	r.Get("/zones/{zoneID}/lines", g.Lines)
	r.Get("/zones/{zoneID}/form-options", g.FormOptions)
	r.Get("/prefs/page-size", g.GetPageSize)
	r.Put("/prefs/page-size", g.SetPageSize)
	return r
}

// recordDraftRequest is the inbound record payload. Optional fields are
// pointers: absence means "do not change" on update.
type recordDraftRequest struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Content  string  `json:"content"`
	TTL      *int    `json:"ttl,omitempty"`
	Proxied  *bool   `json:"proxied,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Weight   *int    `json:"weight,omitempty"`
	Line     *string `json:"line,omitempty"`
	Remark   *string `json:"remark,omitempty"`
}

// toDraft converts the payload to the canonical draft.
func (r recordDraftRequest) toDraft() model.RecordDraft {
	return model.RecordDraft{
		Type:     r.Type,
		Name:     r.Name,
		Content:  r.Content,
		TTL:      r.TTL,
		Proxied:  r.Proxied,
		Priority: r.Priority,
		Weight:   r.Weight,
		Line:     r.Line,
		Remark:   r.Remark,
	}
}

// stateResponse reports the selection machine state.
type stateResponse struct {
	State      string           `json:"state"`
	Provider   model.ProviderID `json:"provider,omitempty"`
	Credential string           `json:"credential,omitempty"`
	LastError  string           `json:"lastError,omitempty"`
}

// viewResponse is the aggregated zone view.
type viewResponse struct {
	ZoneID       string                `json:"zoneId"`
	Records      []model.Record        `json:"records"`
	Lines        []model.Line          `json:"lines,omitempty"`
	MinTTL       int                   `json:"minTTL,omitempty"`
	Truncated    bool                  `json:"truncated,omitempty"`
	Capabilities *api.ZoneCapabilities `json:"capabilities,omitempty"`
	Message      string                `json:"message,omitempty"`
}

// formOptionsResponse reports the legal editing choices for a zone.
type formOptionsResponse struct {
	RecordTypes   []string `json:"recordTypes"`
	RecordType    string   `json:"recordType"`
	TTLs          []int    `json:"ttls"`
	TTL           int      `json:"ttl"`
	ShowProxied   bool     `json:"showProxied"`
	ShowWeight    bool     `json:"showWeight"`
	ShowLine      bool     `json:"showLine"`
	ShowRemark    bool     `json:"showRemark"`
	ShowPriority  bool     `json:"showPriority"`
	StatusToggles bool     `json:"statusToggles"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps the session error taxonomy to HTTP statuses.
func errorStatus(err error) int {
	var verr *session.ValidationError
	var cerr *session.CapabilityViolation
	var serr *session.StateInconsistency
	var terr *api.TransportError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &cerr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serr):
		return http.StatusConflict
	case errors.As(err, &terr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeJSON encodes a response body.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		requestLog(r).WithField(logFieldError, err).Error("error encoding response")
	}
}

// writeError encodes an error body with the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	requestLog(r).WithField(logFieldError, err).Info("request failed")
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// decodeBody decodes a JSON request body, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		requestLog(r).WithField(logFieldError, err).Info("error decoding request body")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("error decoding request body: %v", err)})
		return false
	}
	return true
}

// State reports the selection machine state.
func (g *Gateway) State(w http.ResponseWriter, r *http.Request) {
	state, provider, credential := g.session.Machine().Current()
	resp := stateResponse{
		State:     state.String(),
		Provider:  provider,
		LastError: g.session.Machine().LastError(),
	}
	if provider != "" {
		resp.Credential = credential.String()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// Load performs or repeats the initial provider and credential fetch.
func (g *Gateway) Load(w http.ResponseWriter, r *http.Request) {
	if err := g.session.Load(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	g.State(w, r)
}

// SelectProvider switches the active provider.
func (g *Gateway) SelectProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider model.ProviderID `json:"provider"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := g.session.SelectProvider(req.Provider); err != nil {
		writeError(w, r, err)
		return
	}
	g.State(w, r)
}

// SelectCredential switches the active credential scope.
func (g *Gateway) SelectCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential string `json:"credential"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := g.session.SelectCredential(req.Credential); err != nil {
		writeError(w, r, err)
		return
	}
	g.State(w, r)
}

// Providers lists the fetched provider definitions.
func (g *Gateway) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, g.session.Machine().Providers())
}

// Credentials lists the configured credentials, filtered by provider when
// the "provider" query parameter is set.
func (g *Gateway) Credentials(w http.ResponseWriter, r *http.Request) {
	dir := g.session.Machine().Directory()
	if p := r.URL.Query().Get("provider"); p != "" {
		writeJSON(w, r, http.StatusOK, dir.ListByProvider(model.ProviderID(p)))
		return
	}
	writeJSON(w, r, http.StatusOK, dir.All())
}

// Zones drains the zone listing for the active scope.
func (g *Gateway) Zones(w http.ResponseWriter, r *http.Request) {
	list, err := g.session.Zones(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list.Stale {
		writeJSON(w, r, http.StatusConflict, errorResponse{Error: "selection changed while listing"})
		return
	}
	writeJSON(w, r, http.StatusOK, list.Zones)
}

// RefreshZones asks the backend to re-pull zones from the providers.
func (g *Gateway) RefreshZones(w http.ResponseWriter, r *http.Request) {
	if err := g.session.RefreshZones(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Zone returns one zone.
func (g *Gateway) Zone(w http.ResponseWriter, r *http.Request) {
	zone, err := g.session.GetZone(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, zone)
}

// ZoneView activates a zone and returns its aggregated view.
func (g *Gateway) ZoneView(w http.ResponseWriter, r *http.Request) {
	view, err := g.session.ActivateZone(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toViewResponse(view))
}

// RefreshView re-issues all fetches for the active zone.
func (g *Gateway) RefreshView(w http.ResponseWriter, r *http.Request) {
	view, err := g.session.RefreshAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toViewResponse(view))
}

// toViewResponse converts the session view to the wire shape.
func toViewResponse(view session.RecordView) viewResponse {
	return viewResponse{
		ZoneID:       view.ZoneID,
		Records:      view.Records,
		Lines:        view.Lines,
		MinTTL:       view.MinTTL,
		Truncated:    view.Truncated,
		Capabilities: view.Capabilities,
		Message:      view.Envelope.Message,
	}
}

// CreateRecord validates, gates and submits a new record.
func (g *Gateway) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	record, err := g.session.CreateRecord(r.Context(), chi.URLParam(r, "zoneID"), req.toDraft())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if record == nil {
		w.WriteHeader(http.StatusCreated)
		return
	}
	writeJSON(w, r, http.StatusCreated, record)
}

// UpdateRecord validates, gates and submits a record update.
func (g *Gateway) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	record, err := g.session.UpdateRecord(r.Context(), chi.URLParam(r, "zoneID"), chi.URLParam(r, "recordID"), req.toDraft())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if record == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, record)
}

// DeleteRecord deletes a record.
func (g *Gateway) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := g.session.DeleteRecord(r.Context(), chi.URLParam(r, "zoneID"), chi.URLParam(r, "recordID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetRecordStatus enables or disables a record.
func (g *Gateway) SetRecordStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := g.session.SetRecordStatus(r.Context(), chi.URLParam(r, "zoneID"), chi.URLParam(r, "recordID"), req.Enabled)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Lines lists the routing lines of a zone.
func (g *Gateway) Lines(w http.ResponseWriter, r *http.Request) {
	lines, err := g.session.Lines(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, lines)
}

// FormOptions reports the legal editing choices for a zone given the current
// type and TTL query parameters.
func (g *Gateway) FormOptions(w http.ResponseWriter, r *http.Request) {
	currentType := r.URL.Query().Get("type")
	currentTTL, _ := strconv.Atoi(r.URL.Query().Get("ttl"))

	opts := g.session.FormOptionsFor(chi.URLParam(r, "zoneID"), currentType, currentTTL)
	writeJSON(w, r, http.StatusOK, formOptionsResponse{
		RecordTypes:   opts.RecordTypes,
		RecordType:    opts.RecordType,
		TTLs:          opts.TTLs,
		TTL:           opts.TTL,
		ShowProxied:   opts.ShowProxied,
		ShowWeight:    opts.ShowWeight,
		ShowLine:      opts.ShowLine,
		ShowRemark:    opts.ShowRemark,
		ShowPriority:  opts.ShowPriority,
		StatusToggles: opts.StatusToggles,
	})
}

// GetPageSize reports the persisted page-size preference.
func (g *Gateway) GetPageSize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]int{"pageSize": g.session.PageSize()})
}

// SetPageSize persists the page-size preference.
func (g *Gateway) SetPageSize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PageSize int `json:"pageSize"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := g.session.SetPageSize(req.PageSize); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	g.GetPageSize(w, r)
}

// requestLog tags a log entry with the request coordinates.
func requestLog(r *http.Request) *log.Entry {
	return log.WithFields(log.Fields{logFieldRequestMethod: r.Method, logFieldRequestPath: r.URL.Path})
}

// Init starts the gateway server.
func Init(options SocketOptions, g *Gateway) *http.Server {
	r := g.Router()

	srv := createHTTPServer(options.GetGatewayAddress(), r, options.GetReadTimeout(), options.GetWriteTimeout())
	go func() {
		log.Infof("starting gateway on addr: '%s'", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("can't serve on addr: '%s', error: %v", srv.Addr, err)
		}
	}()
	return srv
}

func createHTTPServer(addr string, hand http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		Addr:              addr,
		Handler:           hand,
	}
}

// ShutdownGracefully gracefully shuts down the gateway server.
func ShutdownGracefully(srv *http.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-sigCh
	log.Infof("shutting down server due to received signal: %v", sig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("error shutting down server: %v", err)
	}
	cancel()
}
