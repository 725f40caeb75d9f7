package api

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

// errorResponse is the failure envelope for every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError sends the {error, details} envelope. err may be nil when
// there is no underlying cause worth surfacing.
func writeError(w http.ResponseWriter, status int, summary string, err error) {
	resp := errorResponse{Error: summary}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, resp, status)
}
