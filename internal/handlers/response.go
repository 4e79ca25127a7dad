package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteFailure writes an order failure as a bare JSON string, so clients tell
// success from failure by whether the body is an object or a string
func WriteFailure(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, message, logger)
}
