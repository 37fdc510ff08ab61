package handlers

import (
	"net/http"

	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/pkg/logger"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	orchestrator *services.Orchestrator
	logger       *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(orch *services.Orchestrator, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		orchestrator: orch,
		logger:       log.WithComponent("stats"),
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orchestrator.Stats())
}
