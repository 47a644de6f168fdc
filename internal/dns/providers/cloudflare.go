package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-logr/logr"

	"nathanbeddoewebdev/subdns/internal/dns/domain"
)

const (
	// CloudflareBaseURL is the public Cloudflare API v4 endpoint.
	CloudflareBaseURL = "https://api.cloudflare.com/client/v4"

	// CloudflareTokenStore is the keychain entry holding the API token.
	CloudflareTokenStore = "cloudflare"
)

// Compile-time check that CloudflareProvider satisfies domain.Provider.
var _ domain.Provider = (*CloudflareProvider)(nil)

// CloudflareProvider implements domain.Provider using the Cloudflare API v4.
// It authenticates with a scoped API token that needs DNS:Edit on every
// configured zone. Each CreateRecord call is a single attempt; the only
// deadline is the one carried by the caller's context.
type CloudflareProvider struct {
	token   string
	baseURL string
	client  *http.Client
	log     logr.Logger
}

// CloudflareOption configures a CloudflareProvider.
type CloudflareOption func(*CloudflareProvider)

// WithBaseURL points the provider at a different API root (staging, tests).
func WithBaseURL(baseURL string) CloudflareOption {
	return func(c *CloudflareProvider) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) CloudflareOption {
	return func(c *CloudflareProvider) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(log logr.Logger) CloudflareOption {
	return func(c *CloudflareProvider) {
		c.log = log
	}
}

// NewCloudflareProvider creates a CloudflareProvider with the given API token.
func NewCloudflareProvider(token string, opts ...CloudflareOption) *CloudflareProvider {
	c := &CloudflareProvider{
		token:   token,
		baseURL: CloudflareBaseURL,
		client:  &http.Client{},
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetDisplayName returns the human-readable provider name.
func (c *CloudflareProvider) GetDisplayName() string {
	return "Cloudflare"
}

// --- API request/response types ---

// cfEnvelope is the standard Cloudflare API response wrapper. Result is
// kept raw so the created record can be echoed back untouched.
type cfEnvelope struct {
	Success  bool            `json:"success"`
	Errors   []cfError       `json:"errors"`
	Result   json.RawMessage `json:"result"`
	Messages []cfError       `json:"messages,omitempty"`
}

// cfError represents a single Cloudflare API error.
type cfError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// cfDNSRecord is the subset of the Cloudflare DNS record object subdns reads.
type cfDNSRecord struct {
	ID      string `json:"id"`
	ZoneID  string `json:"zone_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// cfCreateRecordBody is the request body for creating a DNS record.
// ttl and proxied are always sent, including their zero values.
type cfCreateRecordBody struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// --- Errors ---

// upstreamError converts a non-2xx Cloudflare response into a
// domain.UpstreamError. It maps known HTTP-level and API-level error codes
// to domain sentinels.
func upstreamError(httpStatus int, errors []cfError) *domain.UpstreamError {
	ue := &domain.UpstreamError{
		Provider:   "Cloudflare",
		StatusCode: httpStatus,
		Detail:     cfErrorString(errors),
	}
	if len(errors) > 0 {
		ue.Message = errors[0].Message
	}

	// Map HTTP status codes to domain sentinels.
	switch httpStatus {
	case http.StatusUnauthorized, http.StatusForbidden:
		ue.Kind = domain.ErrUnauthorized
		return ue
	case http.StatusNotFound:
		ue.Kind = domain.ErrNotFound
		return ue
	case http.StatusTooManyRequests:
		ue.Kind = domain.ErrRateLimited
		return ue
	case http.StatusConflict:
		ue.Kind = domain.ErrConflict
		return ue
	}

	// Fall back to inspecting the error codes/messages.
	for _, e := range errors {
		msg := strings.ToLower(e.Message)
		switch {
		case e.Code == 9109 || e.Code == 10000 || strings.Contains(msg, "authentication"):
			ue.Kind = domain.ErrUnauthorized
		case e.Code == 81044 || strings.Contains(msg, "not found"):
			ue.Kind = domain.ErrNotFound
		case e.Code == 81057 || e.Code == 81058 || strings.Contains(msg, "already exists"):
			ue.Kind = domain.ErrConflict
		}
		if ue.Kind != nil {
			break
		}
	}
	return ue
}

// cfErrorString joins multiple Cloudflare errors into a single string.
func cfErrorString(errors []cfError) string {
	if len(errors) == 0 {
		return "unknown error"
	}
	msgs := make([]string, 0, len(errors))
	for _, e := range errors {
		msgs = append(msgs, fmt.Sprintf("[%d] %s", e.Code, e.Message))
	}
	return strings.Join(msgs, "; ")
}

// --- HTTP helpers ---

// requestError reports a request that never got a response. Its text is
// fixed so the zone ID and upstream URL stay out of caller-facing messages;
// the cause is still reachable through errors.Is/As.
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	switch {
	case errors.Is(e.err, context.DeadlineExceeded):
		return "cloudflare: request timed out"
	case errors.Is(e.err, context.Canceled):
		return "cloudflare: request canceled"
	default:
		return "cloudflare: request failed"
	}
}

func (e *requestError) Unwrap() error {
	return e.err
}

// doJSONWithStatus sends body as JSON and decodes the response into out.
// The HTTP status is returned even when decoding fails so callers can
// decide whether the failure matters.
func (c *CloudflareProvider) doJSONWithStatus(ctx context.Context, method, path string, body any, out any) (int, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("cloudflare: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		c.log.Error(err, "cloudflare request could not be built", "method", method, "path", path)
		return 0, &requestError{err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error(err, "cloudflare request failed", "method", method, "path", path)
		return 0, &requestError{err: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("cloudflare: failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}

// --- Provider implementation ---

// CreateRecord creates a DNS record in the given zone. opts.Name must
// already be fully qualified.
func (c *CloudflareProvider) CreateRecord(ctx context.Context, zoneID string, opts domain.CreateRecordOpts) (*domain.Record, error) {
	body := cfCreateRecordBody{
		Type:    string(opts.Type),
		Name:    opts.Name,
		Content: opts.Content,
		TTL:     opts.TTL,
		Proxied: opts.Proxied,
	}

	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	c.log.V(1).Info("creating record", "zone", zoneID, "name", opts.Name, "type", opts.Type)

	var out cfEnvelope
	status, err := c.doJSONWithStatus(ctx, http.MethodPost, path, body, &out)
	if status != 0 && !is2xx(status) {
		// A rejection is reported with its status even if the body was not
		// a valid envelope; the message then falls back to the generic one.
		return nil, upstreamError(status, out.Errors)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create record %q: %w", opts.Name, err)
	}

	rec, err := cfToDomainRecord(out.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to create record %q: %w", opts.Name, err)
	}

	if rec == nil {
		c.log.Info("record created without result", "zone", zoneID, "name", opts.Name)
		return nil, nil
	}
	c.log.Info("record created", "zone", zoneID, "name", rec.Name, "id", rec.ID)
	return rec, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// --- Conversion helpers ---

// cfToDomainRecord converts a raw Cloudflare result into a domain.Record,
// keeping the raw payload for echoing. A missing or null result yields nil.
func cfToDomainRecord(raw json.RawMessage) (*domain.Record, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	rec := &domain.Record{Raw: raw}

	var r cfDNSRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("cloudflare: unexpected result shape: %w", err)
	}

	rec.ID = r.ID
	rec.ZoneID = r.ZoneID
	rec.Name = r.Name
	rec.Type = domain.RecordType(r.Type)
	rec.Content = r.Content
	rec.TTL = r.TTL
	rec.Proxied = r.Proxied
	return rec, nil
}
