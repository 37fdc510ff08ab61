package handlers

import (
	"encoding/json"
	"net/http"

	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/pkg/logger"
)

// IntelHandler exposes the extraction and classification stages directly,
// useful for debugging regexes against captured scam transcripts.
type IntelHandler struct {
	extractor  *ai.EntityExtractor
	classifier *ai.ScamClassifier
	logger     *logger.Logger
}

// NewIntelHandler creates a new IntelHandler
func NewIntelHandler(extractor *ai.EntityExtractor, classifier *ai.ScamClassifier, log *logger.Logger) *IntelHandler {
	return &IntelHandler{
		extractor:  extractor,
		classifier: classifier,
		logger:     log.WithComponent("intel"),
	}
}

type intelRequest struct {
	Text string `json:"text"`
}

// Extract handles POST /api/v1/intel/extract
func (h *IntelHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req intelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	intel := h.extractor.Extract(req.Text)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"intelligence": intel,
		"total":        intel.Total(),
		"hasCritical":  intel.HasCritical(),
	})
}

// Classify handles POST /api/v1/intel/classify
func (h *IntelHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req intelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	isScam := h.classifier.IsScam(req.Text)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"isScam":    isScam,
		"scamType":  services.InferScamType(req.Text),
		"modelUsed": h.classifier.HasModel(),
	})
}
