package v1

import (
	"net/http"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz reports 503 until the backing store answers a ping.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready.Ready(r.Context()); err != nil {
			writeErr(w, http.StatusServiceUnavailable, "store not ready", "not_ready")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
