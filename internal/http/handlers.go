package http

import (
	"context"
	"net/http"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

const readyTimeout = 5 * time.Second

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]any{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady pings the ledger store
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready == nil {
		NewJSONResponse().Body(map[string]any{"status": "ready"}).Write(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.ready(ctx); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
		NewJSONResponse().
			Status(http.StatusServiceUnavailable).
			Body(map[string]any{
				"status": "not_ready",
				"checks": map[string]string{"store": "failed"},
			}).
			Write(w)
		return
	}
	NewJSONResponse().Body(map[string]any{
		"status": "ready",
		"checks": map[string]string{"store": "ok"},
	}).Write(w)
}
