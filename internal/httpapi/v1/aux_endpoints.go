package v1

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// dbPingTimeout bounds /health/db so a hung database cannot hold the request.
const dbPingTimeout = 2 * time.Second

// health answers {"status":"ok"} without touching the store.
func (s *Server) health(w http.ResponseWriter, r *http.Request) { writeOK(w, nil, nil) }

// healthDB runs a trivial query against the store.
func (s *Server) healthDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		s.log.Error("database health check failed", "req_id", chimw.GetReqID(r.Context()), "err", err)
		writeErr(w, http.StatusInternalServerError, codeInternal, "Database connection failed", nil)
		return
	}
	writeOK(w, nil, map[string]string{"db": "connected"})
}
