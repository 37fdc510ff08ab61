package handlers

import (
	"net/http"
	"time"

	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/pkg/logger"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cache      *cache.RedisCache
	classifier *ai.ScamClassifier
	llm        *ai.LLMClient
	logger     *logger.Logger
	startTime  time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(c *cache.RedisCache, classifier *ai.ScamClassifier, llm *ai.LLMClient, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		cache:      c,
		classifier: classifier,
		llm:        llm,
		logger:     log.WithComponent("health"),
		startTime:  time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "honeytrap-lab",
		Version:   "1.0.0",
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready - reports the state of optional dependencies.
// The service stays ready even when the model or the LLM key is absent
// because every pipeline stage has an offline fallback.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := http.StatusOK
	overallStatus := "ready"

	if h.cache != nil {
		if err := h.cache.Client().Ping(r.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
			overallStatus = "not ready"
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "not configured"
	}

	if h.classifier != nil && h.classifier.HasModel() {
		checks["classifier_model"] = "loaded"
	} else {
		checks["classifier_model"] = "keyword fallback"
	}

	if h.llm.Enabled() {
		checks["llm"] = "configured"
	} else {
		checks["llm"] = "offline mode"
	}

	respondJSON(w, status, HealthResponse{
		Status:    overallStatus,
		Service:   "honeytrap-lab",
		Version:   "1.0.0",
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
