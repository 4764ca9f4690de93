package controller

import (
	"encoding/json"
	"net/http"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func logHandlerError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

// statusForFailure maps a service failure envelope onto an HTTP status. The
// envelope message is the contract here, same as the service layer's own
// branching.
func statusForFailure(message string) int {
	switch message {
	case "validation failed":
		return http.StatusBadRequest
	case "authentication failed", "otp verification failed":
		return http.StatusUnauthorized
	case "Account not found", "Recipient account not found":
		return http.StatusNotFound
	case "Insufficient funds":
		return http.StatusUnprocessableEntity
	case "approval failed", "otp issuance failed", "transfer failed":
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
