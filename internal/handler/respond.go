package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"littletreat/internal/model"
	"littletreat/internal/mw"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields model.FieldErrors `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fields model.FieldErrors) {
	writeJSON(w, status, errorResponse{Error: msg, Fields: fields})
}

func sessionFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := mw.SessionID(r.Context())
	if !ok {
		http.Error(w, "no cart session", http.StatusUnauthorized)
	}
	return id, ok
}
