package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"finview/internal/core"
	"finview/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps store failures onto response codes: absent ids
// answer 404, unreachable stores 503, anything else 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, store.ErrUnavailable):
		slog.ErrorContext(r.Context(), "Store unavailable", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusServiceUnavailable, "Store unavailable")
	default:
		slog.ErrorContext(r.Context(), "Store operation failed", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

// coerceAmountCents accepts the amount as either a JSON number or a
// decimal string, mirroring what loose clients actually send.
func coerceAmountCents(v any) (int64, error) {
	switch a := v.(type) {
	case string:
		return core.ParseAmountToCents(a)
	case float64:
		return core.ParseAmountToCents(strconv.FormatFloat(a, 'f', -1, 64))
	case json.Number:
		return core.ParseAmountToCents(a.String())
	default:
		return 0, core.ErrInvalidAmount
	}
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline, carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
