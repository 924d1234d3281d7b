package api

import (
	"encoding/json"
	"net/http"
)

const (
	// CodeOK is returned for accepted and rejected initiation requests.
	CodeOK = 0
	// CodeInternalError is returned when initiation fails unexpectedly.
	CodeInternalError = -1
)

// ProcessBulkRequest is the inbound payload for a bulk processing request.
type ProcessBulkRequest struct {
	BulkFk string `json:"bulkFk"`
}

// ProcessBulkResponse is the envelope returned for every initiation request.
type ProcessBulkResponse struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse reports reachability of the service backends.
type HealthResponse map[string]bool

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
