package api

import (
	"encoding/json"
	"net/http"

	"nathanbeddoewebdev/subdns/internal/config"
)

// errorResponse is the body of every failed request. Details is always
// present, defaulting to an empty object.
type errorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details"`
}

// successResponse wraps a successful payload under data.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// domainsResponse is the body of GET /api/domains.
type domainsResponse struct {
	Success bool                   `json:"success"`
	Domains []config.DomainSummary `json:"domains"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Maintenance bool   `json:"maintenance"`
}

func buildErrorResponse(message string, details map[string]any) errorResponse {
	if details == nil {
		details = map[string]any{}
	}
	return errorResponse{Success: false, Error: message, Details: details}
}

func buildSuccessResponse(data any) successResponse {
	return successResponse{Success: true, Data: data}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, details map[string]any) {
	writeJSON(w, status, buildErrorResponse(message, details))
}
