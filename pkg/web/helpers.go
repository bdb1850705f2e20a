package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// RespondJSON writes payload as a JSON document with the given status.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondMessage writes {"message": message}.
func RespondMessage(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"message": message})
}

// RespondErrors writes {"errors": [...]}.
func RespondErrors(w http.ResponseWriter, logger *slog.Logger, status int, messages []string) {
	if messages == nil {
		messages = []string{}
	}
	RespondJSON(w, logger, status, map[string][]string{"errors": messages})
}

// ParseInt64 extracts an integer path value. Returns the value and a boolean indicating success.
func ParseInt64(r *http.Request, key string) (int64, bool) {
	value, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
