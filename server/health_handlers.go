package server

import (
	"encoding/json"
	"net/http"
)

// HealthzHandler reports process liveness (GET /healthz). It deliberately
// does not probe the backend; a degraded backend surfaces per-request.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"app":    s.config.GetAppName(),
			"env":    s.env,
		})
	}
}
