package services

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies why a submission failed.
type ErrorKind int

const (
	// KindBadRequest covers invalid client input and unauthorized domains.
	KindBadRequest ErrorKind = iota + 1

	// KindServiceUnavailable is returned while maintenance mode is on.
	KindServiceUnavailable

	// KindInternalConfig means the server is missing required configuration.
	KindInternalConfig

	// KindProviderError means the DNS provider rejected the record.
	KindProviderError

	// KindInternal covers anything unanticipated.
	KindInternal
)

// String returns a stable lowercase name, used for logs, metrics and audit.
func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindInternalConfig:
		return "internal_config"
	case KindProviderError:
		return "provider_error"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// User-facing messages. Clients and the presentation layer match on these.
const (
	MsgMaintenance        = "Service is under maintenance"
	MsgMissingFields      = "Missing required fields"
	MsgInvalidSubdomain   = "Invalid subdomain name"
	MsgInvalidTarget      = "Invalid target (IP or hostname)"
	MsgDomainNotFound     = "Domain not found or not configured"
	MsgInvalidRecordType  = "Invalid record type"
	MsgTokenNotConfigured = "Cloudflare API token not configured"
	MsgProviderFallback   = "Failed to create DNS record"
	MsgInternal           = "Internal server error"
)

// Error is the single error type returned by Service.Submit.
type Error struct {
	// Kind is the failure category.
	Kind ErrorKind

	// Message is safe to show to the caller verbatim.
	Message string

	// Status is the HTTP status to respond with. For KindProviderError it
	// is the provider's own status.
	Status int

	// Details carries optional structured context for the caller.
	Details map[string]any

	// Err is the underlying cause, if any. It is never shown to callers.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func badRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg, Status: http.StatusBadRequest}
}

func unavailable() *Error {
	return &Error{Kind: KindServiceUnavailable, Message: MsgMaintenance, Status: http.StatusServiceUnavailable}
}

func internalConfig(msg string) *Error {
	return &Error{Kind: KindInternalConfig, Message: msg, Status: http.StatusInternalServerError}
}

func providerError(status int, msg string, cause error) *Error {
	if msg == "" {
		msg = MsgProviderFallback
	}
	return &Error{Kind: KindProviderError, Message: msg, Status: status, Err: cause}
}

func internalError(cause error) *Error {
	msg := MsgInternal
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &Error{Kind: KindInternal, Message: msg, Status: http.StatusInternalServerError, Err: cause}
}
