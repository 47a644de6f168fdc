// Package services provides the DNS record submission layer.
//
// Service.Submit takes an untrusted request, validates it, checks the
// domain against the configured registry, fills in the record type and
// forwards a single create call to the provider. Every failure comes back
// as a *Error carrying the HTTP status and a message safe to show callers.
// The HTTP handlers and the CLI both go through Submit rather than calling
// the provider directly.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"nathanbeddoewebdev/subdns/internal/auditlog"
	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/dns/domain"
	"nathanbeddoewebdev/subdns/internal/metrics"
)

// SubmitRequest is an untrusted record creation request. An empty
// RecordType means the caller omitted it.
type SubmitRequest struct {
	Domain     string `json:"domain"`
	Subdomain  string `json:"subdomain"`
	RecordType string `json:"recordType,omitempty"`
	Target     string `json:"target"`
}

// SubmitResult is returned when the provider accepted the record.
type SubmitResult struct {
	// Record is the provider's created-record payload. It is nil when the
	// provider acknowledged the create without returning a result.
	Record *domain.Record `json:"record,omitempty"`

	// Message is a human-readable confirmation naming the record.
	Message string `json:"message"`
}

// Auditor receives one entry per submission that got past the
// maintenance check. Implementations must not block for long or fail.
type Auditor interface {
	Record(ctx context.Context, entry auditlog.AuditEntry)
}

// Service is the DNS record submission orchestrator.
type Service struct {
	cfg      *config.Config
	provider domain.Provider
	log      logr.Logger
	auditor  Auditor
	metrics  *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithAuditor records every submission outcome.
func WithAuditor(a Auditor) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithMetrics counts submissions and times provider calls.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New returns a Service reading cfg and creating records through provider.
// cfg must not be modified afterwards.
func New(cfg *config.Config, provider domain.Provider, opts ...Option) *Service {
	svc := &Service{
		cfg:      cfg,
		provider: provider,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.log = svc.log.WithName("dns")
	return svc
}

// Maintenance reports whether maintenance mode is on.
func (s *Service) Maintenance() bool {
	return s.cfg.Maintenance
}

// ActiveDomains lists the domains records may be created under. It fails
// with KindServiceUnavailable during maintenance.
func (s *Service) ActiveDomains(_ context.Context) ([]config.DomainSummary, error) {
	if s.cfg.Maintenance {
		return nil, unavailable()
	}
	return s.cfg.Domains.ActiveDomains(), nil
}

// Submit validates req and creates the record. A non-nil error is always
// a *Error. Panics inside the pipeline are recovered and reported as
// KindInternal.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (res *SubmitResult, err error) {
	start := time.Now()
	var recordType domain.RecordType

	defer func() {
		if r := recover(); r != nil {
			s.log.Error(nil, "submission panicked", "panic", r)
			res, err = nil, internalError(panicError(r))
		}
		s.observe(ctx, req, recordType, res, err, time.Since(start))
	}()

	out, svcErr := s.submit(ctx, req, &recordType)
	if svcErr != nil {
		return nil, svcErr
	}
	return out, nil
}

func (s *Service) submit(ctx context.Context, req SubmitRequest, recordType *domain.RecordType) (*SubmitResult, *Error) {
	if s.cfg.Maintenance {
		return nil, unavailable()
	}

	if req.Domain == "" || req.Subdomain == "" || req.Target == "" {
		return nil, badRequest(MsgMissingFields)
	}
	if !ValidateSubdomain(req.Subdomain) {
		return nil, badRequest(MsgInvalidSubdomain)
	}
	if !ValidateTarget(req.Target) {
		return nil, badRequest(MsgInvalidTarget)
	}

	entry, ok := s.cfg.Domains.Resolve(req.Domain)
	if !ok {
		return nil, badRequest(MsgDomainNotFound)
	}

	switch {
	case req.RecordType == "":
		*recordType = DetectRecordType(req.Target)
	case ValidateRecordType(req.RecordType):
		*recordType = domain.RecordType(req.RecordType)
	default:
		return nil, badRequest(MsgInvalidRecordType)
	}

	if !s.cfg.HasToken() {
		return nil, internalConfig(MsgTokenNotConfigured)
	}

	name := BuildRecordName(req.Subdomain, req.Domain)
	opts := domain.CreateRecordOpts{
		Name:    name,
		Type:    *recordType,
		Content: req.Target,
		TTL:     DefaultTTL,
		Proxied: DefaultProxied,
	}

	callStart := time.Now()
	record, err := s.provider.CreateRecord(ctx, entry.ZoneID, opts)
	s.metrics.ObserveProvider(s.provider.GetDisplayName(), providerStatus(err), time.Since(callStart))
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			return nil, providerError(ue.StatusCode, ue.Message, err)
		}
		return nil, internalError(err)
	}

	return &SubmitResult{
		Record:  record,
		Message: "DNS record created successfully: " + name,
	}, nil
}

// observe logs, counts and audits one finished submission.
func (s *Service) observe(ctx context.Context, req SubmitRequest, recordType domain.RecordType, res *SubmitResult, err error, elapsed time.Duration) {
	entry := auditlog.AuditEntry{
		Domain:     req.Domain,
		Subdomain:  req.Subdomain,
		RecordType: string(recordType),
		Target:     req.Target,
		DurationMs: elapsed.Milliseconds(),
	}
	if entry.RecordType == "" {
		entry.RecordType = req.RecordType
	}

	var svcErr *Error
	if err != nil {
		errors.As(err, &svcErr)
	}

	switch {
	case svcErr == nil:
		entry.Outcome = auditlog.OutcomeSuccess
		entry.Status = http.StatusOK
		entry.Detail = res.Message
		if res.Record != nil {
			entry.RecordName = res.Record.Name
			entry.RecordID = res.Record.ID
		}
		s.log.Info("record created", "domain", req.Domain, "subdomain", req.Subdomain, "type", recordType, "durationMs", entry.DurationMs)
	default:
		entry.Outcome = svcErr.Kind.String()
		entry.Status = svcErr.Status
		entry.Detail = svcErr.Message
		switch svcErr.Kind {
		case KindInternal, KindInternalConfig:
			s.log.Error(svcErr.Err, "submission failed", "kind", svcErr.Kind.String(), "domain", req.Domain, "reason", svcErr.Message)
		default:
			s.log.V(1).Info("submission rejected", "kind", svcErr.Kind.String(), "status", svcErr.Status, "domain", req.Domain, "reason", svcErr.Message)
		}
	}

	s.metrics.ObserveSubmission(entry.Outcome, entry.RecordType)

	if svcErr != nil && svcErr.Kind == KindServiceUnavailable {
		return
	}
	if s.auditor != nil {
		s.auditor.Record(ctx, entry)
	}
}

// providerStatus extracts the upstream HTTP status from a CreateRecord
// result, 200 on success and 0 when no response arrived.
func providerStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
