// Package api exposes the DNS submission service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"

	"nathanbeddoewebdev/subdns/internal/auditlog"
	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/dns/services"
	"nathanbeddoewebdev/subdns/internal/metrics"
)

// MaxBodyBytes caps the size of a create-dns request body.
const MaxBodyBytes = 50 << 20

const (
	msgFetchDomains = "Failed to fetch domains"
	msgInternal     = "Internal server error"
	msgBodyTooLarge = "Request body too large"
	msgNotFound     = "Not found"
	msgNotAllowed   = "Method not allowed"
)

// DNSService is what the handlers need from the submission layer.
type DNSService interface {
	Submit(ctx context.Context, req services.SubmitRequest) (*services.SubmitResult, error)
	ActiveDomains(ctx context.Context) ([]config.DomainSummary, error)
	Maintenance() bool
}

// Server routes HTTP requests to a DNSService.
type Server struct {
	svc     DNSService
	log     logr.Logger
	metrics *metrics.Metrics
	router  *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithMetrics instruments requests and mounts GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer builds the router.
func NewServer(svc DNSService, opts ...Option) *Server {
	s := &Server{svc: svc, log: logr.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithName("api")

	r := mux.NewRouter()
	r.Use(s.recoverer, cors, s.instrument)

	r.HandleFunc("/api/domains", s.handleDomains).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/create-dns", s.handleCreateDNS).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound, nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgNotAllowed, nil)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := s.svc.ActiveDomains(r.Context())
	if err != nil {
		var svcErr *services.Error
		if errors.As(err, &svcErr) && svcErr.Kind == services.KindServiceUnavailable {
			writeError(w, svcErr.Status, svcErr.Message, svcErr.Details)
			return
		}
		s.log.Error(err, "listing domains failed")
		writeError(w, http.StatusInternalServerError, msgFetchDomains, nil)
		return
	}
	if domains == nil {
		domains = []config.DomainSummary{}
	}
	writeJSON(w, http.StatusOK, domainsResponse{Success: true, Domains: domains})
}

func (s *Server) handleCreateDNS(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmitRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge, nil)
			return
		}
		s.log.V(1).Info("failed to read request body", "error", err.Error())
	}

	ctx := auditlog.WithMetadata(r.Context(), auditlog.Metadata{
		Source:     auditlog.SourceHTTP,
		RemoteAddr: r.RemoteAddr,
	})

	res, err := s.svc.Submit(ctx, req)
	if err != nil {
		var svcErr *services.Error
		if errors.As(err, &svcErr) {
			writeError(w, svcErr.Status, svcErr.Message, svcErr.Details)
			return
		}
		s.log.Error(err, "unexpected submission error")
		writeError(w, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	writeJSON(w, http.StatusOK, buildSuccessResponse(res))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Maintenance: s.svc.Maintenance()})
}

// decodeSubmitRequest reads the body leniently. Anything that is not a
// JSON object yields an empty request, and non-string fields are dropped,
// so both end up as missing fields. recordType is the exception, see
// recordTypeField. Only a read error is returned, along with whatever was
// decoded.
func decodeSubmitRequest(w http.ResponseWriter, r *http.Request) (services.SubmitRequest, error) {
	var req services.SubmitRequest
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return req, err
	}

	var fields map[string]any
	if json.Unmarshal(data, &fields) != nil {
		return req, nil
	}
	req.Domain = stringField(fields, "domain")
	req.Subdomain = stringField(fields, "subdomain")
	req.RecordType = recordTypeField(fields)
	req.Target = stringField(fields, "target")
	return req, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// recordTypeField treats null, false and 0 like an omitted recordType. Any
// other non-string value is passed on as its JSON text, which never names
// a supported type, so the service rejects it as an invalid record type.
func recordTypeField(m map[string]any) string {
	switch v := m["recordType"].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	}
	data, err := json.Marshal(m["recordType"])
	if err != nil {
		return "invalid"
	}
	return string(data)
}
