package handlers

import (
	"encoding/json"
	"net/http"

	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Analyze  *AnalyzeHandler
	Intel    *IntelHandler
	Sessions *SessionsHandler
	Stats    *StatsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Orchestrator *services.Orchestrator
	Extractor    *ai.EntityExtractor
	Classifier   *ai.ScamClassifier
	LLM          *ai.LLMClient
	Sessions     *session.Store
	Cache        *cache.RedisCache
	Logger       *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Classifier, deps.LLM, deps.Logger),
		Analyze:  NewAnalyzeHandler(deps.Orchestrator, deps.Logger),
		Intel:    NewIntelHandler(deps.Extractor, deps.Classifier, deps.Logger),
		Sessions: NewSessionsHandler(deps.Sessions, deps.Cache, deps.Logger),
		Stats:    NewStatsHandler(deps.Orchestrator, deps.Logger),
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
