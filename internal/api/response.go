package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// Error is the wire form of an API error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// envelope wraps every enveloped API response: exactly one of Data or Error
// is set.
type envelope struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// WriteJSON writes payload wrapped in the {"data": ...} success envelope.
func WriteJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	writeJSON(w, status, envelope{Data: payload}, logger)
}

// WriteError writes the {"error": {...}} envelope. code is a stable
// machine-readable slug; message is safe to show the user.
func WriteError(w http.ResponseWriter, status int, code, message string, logger *slog.Logger) {
	writeJSON(w, status, envelope{Error: &Error{Code: code, Message: message, Status: status}}, logger)
}

// writeJSON writes data as-is with the given status code. The chat endpoint
// uses it directly because its payload shape is fixed by the client
// contract and carries no envelope.
//
// Uses buffer-first strategy so headers are only sent after successful
// encoding, which allows returning a proper 500 if encoding fails.
func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		logger.Error("encoding JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Client disconnects are common and expected.
		logger.Debug("writing response body", "error", err)
	}
}
