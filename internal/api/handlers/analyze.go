package handlers

import (
	"encoding/json"
	"net/http"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/pkg/logger"
)

// AnalyzeHandler handles the scammer-facing conversation endpoint
type AnalyzeHandler struct {
	orchestrator *services.Orchestrator
	logger       *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler
func NewAnalyzeHandler(orch *services.Orchestrator, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		orchestrator: orch,
		logger:       log.WithComponent("analyze"),
	}
}

// Post handles POST /analyze
func (h *AnalyzeHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if req.Message.Text == "" && req.Message.AudioBase64 == "" {
		respondError(w, http.StatusBadRequest, "message text or audio is required")
		return
	}

	reply := h.orchestrator.HandleMessage(r.Context(), &req)

	respondJSON(w, http.StatusOK, models.AnalyzeResponse{
		Status: "success",
		Reply:  reply,
	})
}
