package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"assignment_service/internal/errdefs"
)

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, errdefs.ErrValidation),
		errors.Is(err, errdefs.ErrDeadlinePassed),
		errors.Is(err, errdefs.ErrAttemptLimit):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errdefs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errdefs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errdefs.ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	_, _ = w.Write(resp)
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorJSON(w, statusFromErr(err), err.Error())
}

// rejectBody guards read-only endpoints that must not carry a payload.
func rejectBody(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > 0 {
		writeErrorJSON(w, http.StatusBadRequest, "request body not allowed")
		return true
	}
	return false
}
