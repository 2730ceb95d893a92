package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.URL.RawQuery != "" || r.ContentLength > 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.health.Ping(r.Context()); err != nil {
		h.log.Error("Health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}
